package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "legal-docs-workers/internal/common/errors"
)

// GeneratedDocument is the index entry written after each generation.
type GeneratedDocument struct {
	GenerationID   string    `json:"generationId"`
	RecordID       string    `json:"recordId"`
	OwnerID        string    `json:"ownerId"`
	DocumentType   string    `json:"documentType"`
	Filename       string    `json:"filename"`
	OutputKey      string    `json:"outputKey,omitempty"`
	SizeBytes      int       `json:"sizeBytes"`
	Diagnostics    []string  `json:"diagnostics,omitempty"`
	AnchorFallback bool      `json:"anchorFallback"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// DocumentIndex records generated documents in Elasticsearch so the firm can
// search what was produced for each record.
type DocumentIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewDocumentIndex(client *elasticsearch.Client, index string) *DocumentIndex {
	return &DocumentIndex{client: client, index: index}
}

// IndexGenerated writes doc under its generation id.
func (d *DocumentIndex) IndexGenerated(ctx context.Context, doc GeneratedDocument) error {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewIndexWriteFailedError(d.index, err)
	}

	req := esapi.IndexRequest{
		Index:      d.index,
		DocumentID: doc.GenerationID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, d.client)
	if err != nil {
		return apperrors.NewIndexWriteFailedError(d.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return apperrors.NewIndexWriteFailedError(d.index, fmt.Errorf("%s: %s", res.Status(), msg))
	}
	return nil
}
