package miniostore

import (
	"context"
	"io"

	"github.com/MicaelTR/ConectaVizinhos/internal/image"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type store struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func New(client *minio.Client, bucket string, logger *zap.Logger) image.Store {
	return &store{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

func (s *store) Put(ctx context.Context, reader io.Reader, size int64, contentType string) (uuid.UUID, error) {
	id := uuid.New()

	info, err := s.client.PutObject(
		ctx,
		s.bucket,
		id.String(),
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Debug("stored image",
		zap.String("bucket", info.Bucket),
		zap.String("key", info.Key),
		zap.Int64("size", info.Size),
	)

	return id, nil
}

func (s *store) Get(ctx context.Context, id uuid.UUID) (*image.File, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, id.String(), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat forces the first request and surfaces
	// a missing key.
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, image.ErrFileNotFound
		}
		return nil, err
	}

	return &image.File{
		ID:          id,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		Reader:      obj,
	}, nil
}

func (s *store) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.StatObject(ctx, s.bucket, id.String(), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return image.ErrFileNotFound
		}
		return err
	}

	return s.client.RemoveObject(ctx, s.bucket, id.String(), minio.RemoveObjectOptions{})
}
