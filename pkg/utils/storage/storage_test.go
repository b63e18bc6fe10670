package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted []string
	putErr  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "png", ExtensionOf("oprit.PNG"))
	assert.Equal(t, "jpeg", ExtensionOf("IMG_0001.jpeg"))
	assert.Equal(t, "jpg", ExtensionOf("photo"))
	assert.Equal(t, "jpg", ExtensionOf(""))
	assert.Equal(t, "jpg", ExtensionOf("trailing."))
}

func TestUniqueName(t *testing.T) {
	a := UniqueName("terras.webp")
	b := UniqueName("terras.webp")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".webp"))
	assert.Len(t, a, 36+len(".webp"))
}

func TestR2StorePut(t *testing.T) {
	client := &fakeS3{}
	store := newR2Store(client, "driveway-photos", "https://cdn.bereschoon.nl/")

	path, err := store.Put(context.Background(), "abc.jpg", []byte("jpegbytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "abc.jpg", path)
	assert.Equal(t, "driveway-photos", aws.ToString(client.put.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(client.put.ContentType))
	assert.Equal(t, int64(9), aws.ToInt64(client.put.ContentLength))
	assert.Equal(t, "*", aws.ToString(client.put.IfNoneMatch))
	assert.Equal(t, []byte("jpegbytes"), client.body)
}

func TestR2StorePutDefaultsContentType(t *testing.T) {
	client := &fakeS3{}
	store := newR2Store(client, "b", "")

	_, err := store.Put(context.Background(), "x.jpg", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", aws.ToString(client.put.ContentType))
}

func TestR2StorePutError(t *testing.T) {
	store := newR2Store(&fakeS3{putErr: errors.New("denied")}, "b", "")

	_, err := store.Put(context.Background(), "x.jpg", nil, "image/jpeg")
	assert.ErrorContains(t, err, "denied")
}

func TestR2StorePublicURL(t *testing.T) {
	store := newR2Store(&fakeS3{}, "b", "https://cdn.bereschoon.nl/driveway-photos/")
	assert.Equal(t, "https://cdn.bereschoon.nl/driveway-photos/abc.jpg", store.PublicURL("abc.jpg"))
	assert.Empty(t, store.PublicURL(" "))

	unconfigured := newR2Store(&fakeS3{}, "b", "")
	assert.Empty(t, unconfigured.PublicURL("abc.jpg"))
}

func TestR2StoreDelete(t *testing.T) {
	client := &fakeS3{}
	store := newR2Store(client, "b", "")

	require.NoError(t, store.Delete(context.Background(), "abc.jpg"))
	assert.Equal(t, []string{"abc.jpg"}, client.deleted)
}

func TestR2StoreDeleteEmptyPath(t *testing.T) {
	client := &fakeS3{}
	store := newR2Store(client, "b", "")

	assert.ErrorIs(t, store.Delete(context.Background(), ""), ErrEmptyPath)
	assert.Empty(t, client.deleted)
}
