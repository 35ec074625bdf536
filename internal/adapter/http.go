package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/docstore"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client       *utils.HTTPClient
	pollInterval time.Duration

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// batchRequest mirrors the body of POST /api/batch.
type batchRequest struct {
	Ops []docstore.WriteOp `json:"ops"`
}

type addResponse struct {
	ID string `json:"id"`
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises adapterCfg.HTTPAddress and configures the resty client with
// the request timeout. Subscriptions re-read their collection every
// adapterCfg.PollInterval.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	pollInterval := adapterCfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = config.DefaultPollInterval
	}

	return &httpServerAdapter{
		client:       utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/user/register and keeps the bearer
// token from the Authorization response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login POSTs the credentials to /api/user/login and keeps the bearer token
// from the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, endpoint string, user models.User) (models.User, error) {
	var found models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&found).
		Post(endpoint)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%s parse bearer token: %w", endpoint, err)
	}
	if found.UserID == "" {
		if found.UserID, err = utils.UnverifiedSubject(token); err != nil {
			return models.User{}, fmt.Errorf("%s parse user id: %w", endpoint, err)
		}
	}
	if found.Login == "" {
		found.Login = user.Login
	}
	found.Password = ""

	h.SetToken(token)
	return found, nil
}

func (h *httpServerAdapter) ServerInfo(ctx context.Context) (models.ServerInfo, error) {
	var info models.ServerInfo
	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.ServerInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerInfo{}, err
	}
	return info, nil
}

func (h *httpServerAdapter) Get(ctx context.Context, path string) (docstore.Document, error) {
	if err := docstore.ValidateDocumentPath(path); err != nil {
		return docstore.Document{}, err
	}

	var doc docstore.Document
	resp, err := h.authedRequest(ctx).SetResult(&doc).Get(docURL(path))
	if err != nil {
		return docstore.Document{}, transportError("get", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return docstore.Document{}, err
	}

	return doc, nil
}

func (h *httpServerAdapter) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.ValidateCollectionPath(collection); err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0)
	resp, err := h.authedRequest(ctx).SetResult(&docs).Get(collectionURL(collection))
	if err != nil {
		return nil, transportError("list", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	docstore.SortDocuments(docs)
	return docs, nil
}

func (h *httpServerAdapter) Set(ctx context.Context, path string, data any) error {
	if err := docstore.ValidateDocumentPath(path); err != nil {
		return err
	}
	raw, err := docstore.EncodeData(data)
	if err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(raw).
		Put(docURL(path))
	if err != nil {
		return transportError("set", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := docstore.ValidateDocumentPath(path); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Patch(docURL(path))
	if err != nil {
		return transportError("update", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Delete(ctx context.Context, path string) error {
	if err := docstore.ValidateDocumentPath(path); err != nil {
		return err
	}

	resp, err := h.authedRequest(ctx).Delete(docURL(path))
	if err != nil {
		return transportError("delete", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Add(ctx context.Context, collection string, data any) (string, error) {
	if err := docstore.ValidateCollectionPath(collection); err != nil {
		return "", err
	}
	raw, err := docstore.EncodeData(data)
	if err != nil {
		return "", err
	}

	var added addResponse
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(raw).
		SetResult(&added).
		Post(collectionURL(collection))
	if err != nil {
		return "", transportError("add", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return added.ID, nil
}

func (h *httpServerAdapter) BatchWrite(ctx context.Context, ops []docstore.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(batchRequest{Ops: ops}).
		Post("/api/batch")
	if err != nil {
		return transportError("batch write", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// transportError reports a request that never got a response. Writes that
// fail this way are rejected as a whole.
func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s request: %w", docstore.ErrWriteRejected, op, err)
}

func docURL(path string) string {
	return "/api/docs/" + escapePath(path)
}

func collectionURL(collection string) string {
	return "/api/collections/" + escapePath(collection)
}

func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
