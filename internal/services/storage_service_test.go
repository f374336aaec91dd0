// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// multipartFile builds a request carrying one file and returns the parsed
// form part.
func multipartFile(t *testing.T, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file, header
}

func newLocalStorage(t *testing.T, mem *memstore.Store) *StorageService {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{UploadDir: t.TempDir(), MaxUploadMB: 1}}
	svc, err := NewStorageService(cfg, mem, nil)
	require.NoError(t, err)
	return svc
}

func TestUploadToLocal(t *testing.T) {
	mem := memstore.New()
	svc := newLocalStorage(t, mem)
	file, header := multipartFile(t, "my photo.png", pngHeader)

	result, err := svc.UploadFile(context.Background(), file, header, svc.ProductImageOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "products/"))
	assert.True(t, strings.HasSuffix(result.Key, "-my-photo.png"))
	assert.Equal(t, "/uploads/"+result.Key, result.URL)
	assert.Equal(t, int64(len(pngHeader)), result.Size)
	assert.Equal(t, "image/png", result.MimeType)

	written, err := os.ReadFile(filepath.Join(svc.uploadDir, filepath.FromSlash(result.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)

	uploads := mem.RecordedUploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, result.Key, uploads[0].Key)
	assert.Equal(t, "my photo.png", uploads[0].FileName)
}

func TestUploadRejectsBadFiles(t *testing.T) {
	svc := newLocalStorage(t, memstore.New())
	ctx := context.Background()

	file, header := multipartFile(t, "notes.txt", []byte("hello"))
	_, err := svc.UploadFile(ctx, file, header, svc.ProductImageOptions())
	assert.ErrorIs(t, err, ErrFileType)

	file, header = multipartFile(t, "fake.png", []byte("definitely not an image"))
	_, err = svc.UploadFile(ctx, file, header, svc.ProductImageOptions())
	assert.ErrorIs(t, err, ErrInvalidImage)

	big := append(append([]byte{}, pngHeader...), make([]byte, 2<<20)...)
	file, header = multipartFile(t, "big.png", big)
	_, err = svc.UploadFile(ctx, file, header, svc.ProductImageOptions())
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadSurvivesUnavailableStore(t *testing.T) {
	mem := memstore.New()
	mem.SetAvailable(false)
	svc := newLocalStorage(t, mem)
	file, header := multipartFile(t, "a.png", pngHeader)

	_, err := svc.UploadFile(context.Background(), file, header, svc.ProductImageOptions())
	require.NoError(t, err)
	assert.Empty(t, mem.RecordedUploads())
}

type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, in)
	return &s3.PutObjectOutput{}, nil
}

func TestUploadToS3(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{UploadDir: t.TempDir(), MaxUploadMB: 1},
		AWS:    config.AWSConfig{Region: "us-east-1", S3Bucket: "shop-images"},
	}
	svc, err := NewStorageService(cfg, nil, nil)
	require.NoError(t, err)
	client := &fakeS3{}
	svc.WithS3Client(client)

	file, header := multipartFile(t, "a.png", pngHeader)
	result, err := svc.UploadFile(context.Background(), file, header, svc.ProductImageOptions())
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "shop-images", aws.StringValue(client.inputs[0].Bucket))
	assert.Equal(t, "public-read", aws.StringValue(client.inputs[0].ACL))
	assert.Equal(t, "https://shop-images.s3.us-east-1.amazonaws.com/"+result.Key, result.URL)

	cfg.AWS.CloudFrontURL = "https://cdn.example.com/"
	svc.aws = cfg.AWS
	assert.Equal(t, "https://cdn.example.com/x.png", svc.getS3URL("x.png"))
}
