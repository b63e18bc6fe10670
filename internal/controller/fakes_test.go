package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"bereschoon_backend/internal/model"
	"bereschoon_backend/internal/repository"
	"bereschoon_backend/pkg/webhook"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	types     map[string]string
	putErr    error
	deleteErr error
	baseURL   string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		blobs:   map[string][]byte{},
		types:   map[string]string{},
		baseURL: "https://cdn.test/driveway-photos",
	}
}

func (s *memoryStore) Put(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	if _, exists := s.blobs[name]; exists {
		return "", errors.New("object already exists")
	}
	s.blobs[name] = append([]byte(nil), body...)
	s.types[name] = contentType
	return name, nil
}

func (s *memoryStore) PublicURL(path string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/" + path
}

func (s *memoryStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, path)
	delete(s.types, path)
	return nil
}

func (s *memoryStore) list() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.blobs))
	for name := range s.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memorySubmissions struct {
	mu        sync.Mutex
	rows      []model.Submission
	createErr error
	latestErr error
}

func (r *memorySubmissions) LatestByEmail(ctx context.Context, normalizedEmail string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latestErr != nil {
		return nil, r.latestErr
	}
	var latest *model.Submission
	for i := range r.rows {
		row := r.rows[i]
		if strings.ToLower(row.Email) != normalizedEmail {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = &row
		}
	}
	return latest, nil
}

func (r *memorySubmissions) Create(ctx context.Context, submission *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if strings.TrimSpace(submission.PhotoURL) == "" {
		return errors.New("photo_url violates not-null constraint")
	}
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	r.rows = append(r.rows, *submission)
	return nil
}

func (r *memorySubmissions) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memorySubmissions) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memoryLedger struct {
	entries []model.GenerationCost
	err     error
}

func (l *memoryLedger) Record(ctx context.Context, entry *model.GenerationCost) error {
	if l.err != nil {
		return l.err
	}
	l.entries = append(l.entries, *entry)
	return nil
}

type recordingNotifier struct {
	payloads []webhook.SubmissionPayload
	err      error
}

func (n *recordingNotifier) Notify(ctx context.Context, payload webhook.SubmissionPayload) error {
	n.payloads = append(n.payloads, payload)
	return n.err
}

type form struct {
	fields    map[string]string
	photoName string
	photoType string
	photo     []byte
}

func validForm() form {
	return form{
		fields: map[string]string{
			"name":    "Jan de Vries",
			"email":   "user@example.com",
			"address": " Dorpsstraat 1, Utrecht ",
			"phone":   "0612345678",
			"service": "terras",
		},
		photoName: "oprit.png",
		photoType: "image/png",
		photo:     []byte("\x89PNG fake image"),
	}
}

func (f form) without(field string) form {
	fields := map[string]string{}
	for k, v := range f.fields {
		if k != field {
			fields[k] = v
		}
	}
	f.fields = fields
	if field == "photo" {
		f.photo = nil
		f.photoName = ""
	}
	return f
}

func (f form) with(field, value string) form {
	fields := map[string]string{field: value}
	for k, v := range f.fields {
		if k != field {
			fields[k] = v
		}
	}
	f.fields = fields
	return f
}

func (f form) request(t *testing.T, path string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range f.fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if f.photoName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, f.photoName))
		h.Set("Content-Type", f.photoType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create photo part: %v", err)
		}
		if _, err := part.Write(f.photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type memoryOrders struct {
	mu         sync.Mutex
	orders     map[string]*model.Order
	history    []model.OrderTrackingHistory
	updates    []map[string]interface{}
	findErr    error
	updateErr  error
	historyErr error
	reloadErr  error
}

func newMemoryOrders(orders ...model.Order) *memoryOrders {
	r := &memoryOrders{orders: map[string]*model.Order{}}
	for i := range orders {
		o := orders[i]
		r.orders[o.ID] = &o
	}
	return r
}

func (r *memoryOrders) find(match func(*model.Order) bool) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, o := range r.orders {
		if match(o) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryOrders) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.find(func(o *model.Order) bool { return o.ID == id })
}

func (r *memoryOrders) FindByTrackingCode(ctx context.Context, code string) (*model.Order, error) {
	return r.find(func(o *model.Order) bool { return o.TrackingCode != nil && *o.TrackingCode == code })
}

func (r *memoryOrders) FindByOrderNumber(ctx context.Context, number string) (*model.Order, error) {
	return r.find(func(o *model.Order) bool { return o.OrderNumber == number })
}

func (r *memoryOrders) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.updates = append(r.updates, fields)
	for k, v := range fields {
		switch k {
		case "status":
			o.Status = v.(string)
		case "carrier_name":
			s := v.(string)
			o.CarrierName = &s
		case "carrier_tracking_url":
			s := v.(string)
			o.CarrierTrackingURL = &s
		case "tracking_code":
			s := v.(string)
			o.TrackingCode = &s
		case "shipped_at":
			ts := v.(time.Time)
			o.ShippedAt = &ts
		case "delivered_at":
			ts := v.(time.Time)
			o.DeliveredAt = &ts
		}
	}
	return nil
}

func (r *memoryOrders) AddTrackingHistory(ctx context.Context, entry *model.OrderTrackingHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.historyErr != nil {
		return r.historyErr
	}
	entry.ID = uint(len(r.history) + 1)
	r.history = append(r.history, *entry)
	return nil
}

func (r *memoryOrders) WithTracking(ctx context.Context, id string) (*model.Order, error) {
	if r.reloadErr != nil {
		return nil, r.reloadErr
	}
	order, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].OrderID == id {
			order.TrackingHistory = append(order.TrackingHistory, r.history[i])
		}
	}
	return order, nil
}

type staticAdmins map[string]bool

func (a staticAdmins) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return a[userID], nil
}
