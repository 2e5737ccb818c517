package database

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// generatedDocumentsMapping keeps ids and codes as keywords so the review UI
// can filter by record, owner, type and diagnostic.
const generatedDocumentsMapping = `{
  "mappings": {
    "properties": {
      "generationId":   {"type": "keyword"},
      "recordId":       {"type": "keyword"},
      "ownerId":        {"type": "keyword"},
      "documentType":   {"type": "keyword"},
      "filename":       {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "outputKey":      {"type": "keyword"},
      "sizeBytes":      {"type": "integer"},
      "diagnostics":    {"type": "keyword"},
      "anchorFallback": {"type": "boolean"},
      "generatedAt":    {"type": "date"}
    }
  }
}`

// ElasticsearchClient wraps the client used by the generated-document index.
type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if len(esCfg.Addresses) == 0 && cfg.GetURL() != "" {
		esCfg.Addresses = []string{cfg.GetURL()}
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &ElasticsearchClient{Client: es}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// EnsureIndex creates the generated-documents index with its mapping unless
// it already exists.
func (c *ElasticsearchClient) EnsureIndex(ctx context.Context, name string) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{name}}.Do(ctx, c.Client)
	if err != nil {
		return errors.NewIndexWriteFailedError(name, err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: name,
		Body:  strings.NewReader(generatedDocumentsMapping),
	}.Do(ctx, c.Client)
	if err != nil {
		return errors.NewIndexWriteFailedError(name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		// Another worker replica created it first.
		if strings.Contains(string(msg), "resource_already_exists_exception") {
			return nil
		}
		return errors.NewIndexWriteFailedError(name, fmt.Errorf("%s: %s", res.Status(), msg))
	}
	return nil
}
