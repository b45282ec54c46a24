package infra_s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/humanbelnik/jukebox/internal/model"
)

const contentType = "application/json"

// Client is the part of *s3.Client the archive uses.
type Client interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Document is the archived form of a closed round.
type Document struct {
	RoundID        string        `json:"round_id"`
	Category       string        `json:"category"`
	StartedAt      time.Time     `json:"started_at"`
	EndsAt         time.Time     `json:"ends_at"`
	ClosedAt       *time.Time    `json:"closed_at,omitempty"`
	TotalVotes     int           `json:"total_votes"`
	WinnerOptionID *string       `json:"winner_option_id"`
	Vetoed         []string      `json:"vetoed"`
	Rows           []DocumentRow `json:"rows"`
}

type DocumentRow struct {
	Rank     int    `json:"rank"`
	OptionID string `json:"option_id"`
	Title    string `json:"title"`
	Composer string `json:"composer,omitempty"`
	Count    int    `json:"count"`
	Vetoed   bool   `json:"vetoed"`
	Winner   bool   `json:"winner"`
}

type Archive struct {
	client Client
	bucket string
	prefix string

	logger *slog.Logger
}

type Option func(*Archive)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// New checks that the bucket is reachable. A bucket that does not exist yet
// is not an error.
func New(ctx context.Context, client Client, bucket, prefix string, opts ...Option) (*Archive, error) {
	a := &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			a.logger.Warn("archive bucket does not exist yet", slog.String("bucket", bucket))
			return a, nil
		}
		return nil, fmt.Errorf("head bucket %s: %w", bucket, err)
	}
	return a, nil
}

func (a *Archive) key(id model.RoundID) string {
	clean := strings.NewReplacer("/", "", "\\", "").Replace(id)
	return path.Join(a.prefix, clean+".json")
}

// SaveResult overwrites the archived copy of a round.
func (a *Archive) SaveResult(ctx context.Context, r model.Round, rows []model.ResultRow) error {
	body, err := json.Marshal(newDocument(r, rows))
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	key := a.key(r.ID)
	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	}); err != nil {
		return fmt.Errorf("failed to save result to S3: %w", err)
	}

	a.logger.Info("result archived", slog.String("round_id", r.ID), slog.String("key", key))
	return nil
}

// LoadResult returns model.ErrNotFound when the round was never archived.
func (a *Archive) LoadResult(ctx context.Context, id model.RoundID) (Document, error) {
	resp, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.key(id)),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return Document{}, model.ErrNotFound
		}
		return Document{}, fmt.Errorf("failed to load result from S3: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read result: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode result: %w", err)
	}
	return doc, nil
}

func newDocument(r model.Round, rows []model.ResultRow) Document {
	doc := Document{
		RoundID:        r.ID,
		Category:       r.Category,
		StartedAt:      r.StartedAt.UTC(),
		EndsAt:         r.EndsAt.UTC(),
		TotalVotes:     r.TotalVotes,
		WinnerOptionID: r.WinnerOptionID,
		Vetoed:         append([]string{}, r.Vetoed...),
		Rows:           make([]DocumentRow, 0, len(rows)),
	}
	if r.ClosedAt != nil {
		closedAt := r.ClosedAt.UTC()
		doc.ClosedAt = &closedAt
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, DocumentRow(row))
	}
	return doc
}
