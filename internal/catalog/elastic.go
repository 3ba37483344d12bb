package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	"github.com/google/uuid"
)

type ESConfig struct {
	URL      string
	User     string
	Password string
	Index    string
}

func NewESClient(ctx context.Context, cfg ESConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// ESLookup resolves products from a search index that mirrors the products table.
type ESLookup struct {
	Client *elasticsearch.Client
	Index  string
}

func NewESLookup(client *elasticsearch.Client, index string) *ESLookup {
	if index == "" {
		index = "products"
	}
	return &ESLookup{Client: client, Index: index}
}

type esDoc struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type mgetResponse struct {
	Docs []struct {
		ID     string `json:"_id"`
		Found  bool   `json:"found"`
		Source esDoc  `json:"_source"`
	} `json:"docs"`
}

func (l *ESLookup) ProductsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Summary, error) {
	out := make(map[uuid.UUID]Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	body, err := json.Marshal(map[string]any{"ids": keys})
	if err != nil {
		return nil, err
	}

	res, err := l.Client.Mget(bytes.NewReader(body),
		l.Client.Mget.WithIndex(l.Index),
		l.Client.Mget.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch mget: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("mget", res)
	}

	var parsed mgetResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("elasticsearch mget: decode: %w", err)
	}
	for _, d := range parsed.Docs {
		if !d.Found {
			continue
		}
		id, err := uuid.Parse(d.ID)
		if err != nil {
			continue
		}
		out[id] = Summary{ID: id, Name: d.Source.Name, Price: d.Source.Price}
	}
	return out, nil
}

// IndexProducts writes products into the index, one document per product keyed by its id.
func (l *ESLookup) IndexProducts(ctx context.Context, products []Product) error {
	for _, p := range products {
		doc, err := json.Marshal(esDoc{Name: p.Name, Price: p.Price})
		if err != nil {
			return err
		}
		res, err := l.Client.Index(l.Index, bytes.NewReader(doc),
			l.Client.Index.WithDocumentID(p.ID.String()),
			l.Client.Index.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("elasticsearch index %s: %w", p.ID, err)
		}
		if res.IsError() {
			err := responseError("index", res)
			res.Body.Close()
			return err
		}
		res.Body.Close()
	}
	return nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
