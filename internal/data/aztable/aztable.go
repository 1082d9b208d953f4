// Package aztable implements remote.Collection on Azure Table Storage. All
// documents share one partition; the row key is the document id and the
// document itself is stored as a JSON string property.
package aztable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"github.com/hay-kot/kanban/internal/core/remote"
)

// Options configures the table client.
type Options struct {
	ConnectionString string
	Table            string
	PartitionKey     string
	MaxRetries       int32
	TryTimeout       time.Duration
}

// Collection is a remote.Collection backed by an Azure table.
type Collection struct {
	client    *aztables.Client
	partition string
}

var _ remote.Collection = (*Collection)(nil)

type entity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Body         string `json:"Body"`
}

// New creates a client for the configured table. It does not contact the
// service; call EnsureTable to create the table when missing.
func New(opts Options) (*Collection, error) {
	if opts.Table == "" {
		opts.Table = remote.CollectionName
	}
	if opts.PartitionKey == "" {
		opts.PartitionKey = remote.CollectionName
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.TryTimeout == 0 {
		opts.TryTimeout = 30 * time.Second
	}

	clientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    opts.MaxRetries,
				TryTimeout:    opts.TryTimeout,
				RetryDelay:    time.Second,
				MaxRetryDelay: 15 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}

	svc, err := aztables.NewServiceClientFromConnectionString(opts.ConnectionString, &clientOptions)
	if err != nil {
		return nil, fmt.Errorf("aztables client: %w", err)
	}

	return &Collection{
		client:    svc.NewClient(opts.Table),
		partition: opts.PartitionKey,
	}, nil
}

// EnsureTable creates the table if it does not exist.
func (c *Collection) EnsureTable(ctx context.Context) error {
	_, err := c.client.CreateTable(ctx, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (c *Collection) Create(ctx context.Context, id string, doc remote.Document) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	payload, err := c.encode(id, doc)
	if err != nil {
		return "", err
	}

	if _, err := c.client.UpsertEntity(ctx, payload, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace}); err != nil {
		return "", fmt.Errorf("create document %q: %w", id, err)
	}
	return id, nil
}

func (c *Collection) ListAll(ctx context.Context) ([]remote.Record, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", c.partition)
	pager := c.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	var records []remote.Record
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		for _, raw := range resp.Entities {
			rec, err := decode(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	// The service orders by row key; present documents in creation order.
	slices.SortStableFunc(records, func(a, b remote.Record) int {
		return a.Doc.CreatedAt.Compare(b.Doc.CreatedAt)
	})
	return records, nil
}

func (c *Collection) Update(ctx context.Context, id string, doc remote.Document) error {
	payload, err := c.encode(id, doc)
	if err != nil {
		return err
	}

	etag := azcore.ETagAny
	_, err = c.client.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{
		IfMatch:    &etag,
		UpdateMode: aztables.UpdateModeReplace,
	})
	if isNotFound(err) {
		return fmt.Errorf("update document %q: %w", id, remote.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update document %q: %w", id, err)
	}
	return nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	etag := azcore.ETagAny
	_, err := c.client.DeleteEntity(ctx, c.partition, id, &aztables.DeleteEntityOptions{IfMatch: &etag})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	return nil
}

func (c *Collection) encode(id string, doc remote.Document) ([]byte, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document %q: %w", id, err)
	}

	payload, err := json.Marshal(entity{
		PartitionKey: c.partition,
		RowKey:       id,
		Body:         string(body),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal entity %q: %w", id, err)
	}
	return payload, nil
}

func decode(raw []byte) (remote.Record, error) {
	var ent entity
	if err := json.Unmarshal(raw, &ent); err != nil {
		return remote.Record{}, fmt.Errorf("decode entity: %w", err)
	}

	var doc remote.Document
	if err := json.Unmarshal([]byte(ent.Body), &doc); err != nil {
		return remote.Record{}, fmt.Errorf("decode document %q: %w", ent.RowKey, err)
	}
	return remote.Record{ID: ent.RowKey, Doc: doc}, nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
