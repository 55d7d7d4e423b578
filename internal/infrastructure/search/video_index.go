package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// VideoIndex keeps published videos searchable by title and description.
type VideoIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewVideoIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *VideoIndex {
	return &VideoIndex{es: es, index: index, logger: logger}
}

type videoDoc struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoFile   string    `json:"videoFile"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toDoc(v *entity.Video) videoDoc {
	return videoDoc{
		ID:          v.ID,
		Owner:       v.Owner,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		VideoFile:   v.VideoFile,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func (d videoDoc) toEntity() entity.Video {
	return entity.Video{
		ID:          d.ID,
		Owner:       d.Owner,
		Title:       d.Title,
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
		VideoFile:   d.VideoFile,
		Duration:    d.Duration,
		Views:       d.Views,
		IsPublished: d.IsPublished,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// IndexVideo upserts a published video; an unpublished one is removed from the index instead.
func (x *VideoIndex) IndexVideo(ctx context.Context, v *entity.Video) error {
	if !v.IsPublished {
		return x.DeleteVideo(ctx, v.ID)
	}
	b, err := json.Marshal(toDoc(v))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: v.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", v.ID, res.Status())
	}
	return nil
}

func (x *VideoIndex) DeleteVideo(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// SearchVideos runs a multi_match over title and description, newest first on equal score.
// An empty query lists all published videos.
func (x *VideoIndex) SearchVideos(ctx context.Context, q string, page, limit int) (*application.SearchPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	must := map[string]any{"match_all": map[string]any{}}
	if q != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "description"},
			},
		}
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": []any{map[string]any{"term": map[string]any{"isPublished": true}}},
			},
		},
		"from": (page - 1) * limit,
		"size": limit,
		"sort": []any{"_score", map[string]any{"createdAt": map[string]any{"order": "desc"}}},
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return &application.SearchPage{Page: page, Limit: limit, Videos: []entity.Video{}}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source videoDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := &application.SearchPage{
		Total:  parsed.Hits.Total.Value,
		Page:   page,
		Limit:  limit,
		Videos: make([]entity.Video, 0, len(parsed.Hits.Hits)),
	}
	for _, h := range parsed.Hits.Hits {
		out.Videos = append(out.Videos, h.Source.toEntity())
	}
	if x.logger != nil {
		x.logger.WithFields(logrus.Fields{"query": q, "hits": out.Total}).Debug("video search")
	}
	return out, nil
}

var _ application.VideoIndexer = (*VideoIndex)(nil)

const videoMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "owner":       {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "thumbnail":   {"type": "keyword", "index": false},
      "videoFile":   {"type": "keyword", "index": false},
      "duration":    {"type": "double"},
      "views":       {"type": "long"},
      "isPublished": {"type": "boolean"},
      "createdAt":   {"type": "date"},
      "updatedAt":   {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *VideoIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(c, x.es)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es exists %s: %s", x.index, res.Status())
	}

	res, err = esapi.IndicesCreateRequest{Index: x.index, Body: strings.NewReader(videoMapping)}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// another replica may have created it first
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("es create %s: %s", x.index, res.Status())
	}
	if x.logger != nil {
		x.logger.WithField("index", x.index).Info("search index ready")
	}
	return nil
}
