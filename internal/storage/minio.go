package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxUploadSize = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Storage wraps the object-store client used for payment proofs and product
// images. Objects are publicly readable; the bucket policy is managed outside
// this service.
type Storage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

func Connect(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &Storage{
		client:   client,
		bucket:   bucket,
		endpoint: endpoint,
		useSSL:   useSSL,
	}, nil
}

// UploadPaymentProof stores a customer transfer screenshot under
// payment-proofs/<orderNumber>-<millis>.<ext> and returns its public URL.
func (s *Storage) UploadPaymentProof(ctx context.Context, orderNumber string, file *multipart.FileHeader) (string, error) {
	ext, err := validateUpload(file)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("payment-proofs/%s-%d%s", orderNumber, time.Now().UnixMilli(), ext)
	return s.put(ctx, objectName, file)
}

// UploadProductImage stores an admin-uploaded catalog image under
// products/<objectid>.<ext> and returns its public URL.
func (s *Storage) UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext, err := validateUpload(file)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("products/%s%s", primitive.NewObjectID().Hex(), ext)
	return s.put(ctx, objectName, file)
}

func (s *Storage) put(ctx context.Context, objectName string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return s.PublicURL(objectName), nil
}

func (s *Storage) PublicURL(objectName string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, objectName)
}

func validateUpload(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", fmt.Errorf("file extension is required")
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max 5MB)")
	}
	return ext, nil
}
