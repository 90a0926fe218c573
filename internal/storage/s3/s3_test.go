package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API

	objects map[string]string
	types   map[string]string
	putErr  error
	buckets map[string]bool
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]string{}, types: map[string]string{}, buckets: map[string]bool{}}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.StringValue(in.Key)] = string(data)
	f.types[aws.StringValue(in.Key)] = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucketWithContext(_ aws.Context, in *s3.HeadBucketInput, _ ...request.Option) (*s3.HeadBucketOutput, error) {
	if !f.buckets[aws.StringValue(in.Bucket)] {
		return nil, errors.New("NotFound")
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucketWithContext(_ aws.Context, in *s3.CreateBucketInput, _ ...request.Option) (*s3.CreateBucketOutput, error) {
	f.buckets[aws.StringValue(in.Bucket)] = true
	return &s3.CreateBucketOutput{}, nil
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	client := New(api, Config{Bucket: "artworks", Region: "eu-central-1"})

	require.NoError(t, client.Upload(ctx, "rooms/1-abc.png", strings.NewReader("one"), "image/png"))
	require.NoError(t, client.Upload(ctx, "rooms/1-abc.png", io.NopCloser(strings.NewReader("two")), ""))

	assert.Equal(t, "two", api.objects["rooms/1-abc.png"])
	assert.Equal(t, "", api.types["rooms/1-abc.png"])

	api.putErr = errors.New("access denied")
	err := client.Upload(ctx, "rooms/2.png", strings.NewReader("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	client := New(api, Config{Bucket: "artworks"})

	require.NoError(t, client.Upload(ctx, "posts/a.png", strings.NewReader("x"), "image/png"))
	require.NoError(t, client.Delete(ctx, "posts/a.png"))
	assert.NotContains(t, api.objects, "posts/a.png")
}

func TestClient_EnsureBucket(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	client := New(api, Config{Bucket: "artworks"})

	require.NoError(t, client.EnsureBucket(ctx))
	assert.True(t, api.buckets["artworks"])
	require.NoError(t, client.EnsureBucket(ctx))
}

func TestClient_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "aws",
			cfg:  Config{Bucket: "artworks", Region: "eu-central-1"},
			want: "https://artworks.s3.eu-central-1.amazonaws.com/rooms/a.png",
		},
		{
			name: "aws default region",
			cfg:  Config{Bucket: "artworks"},
			want: "https://artworks.s3.us-east-1.amazonaws.com/rooms/a.png",
		},
		{
			name: "minio without ssl",
			cfg:  Config{Bucket: "artworks", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/artworks/rooms/a.png",
		},
		{
			name: "minio with ssl",
			cfg:  Config{Bucket: "artworks", Endpoint: "minio.example.com", UseSSL: true},
			want: "https://minio.example.com/artworks/rooms/a.png",
		},
		{
			name: "explicit public base",
			cfg:  Config{Bucket: "artworks", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/rooms/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(newFakeS3(), tt.cfg).PublicURL("rooms/a.png"))
		})
	}
}
