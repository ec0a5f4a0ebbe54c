package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// Resource é a capacidade remota que um EntityList precisa: buscar a
// coleção, criar e atualizar parcialmente um registro
type Resource[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Search(ctx context.Context, nome string) ([]T, error)
	Create(ctx context.Context, body any) error
	Update(ctx context.Context, id int, patch any) error
}

// ErrMissingID é devolvido quando se tenta atualizar um registro sem id
var ErrMissingID = errors.New("record has no id")

// RemoteError representa uma resposta do backend fora do status esperado
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote status %d", e.StatusCode)
}

// apiError é o corpo de erro devolvido pelo backend
type apiError struct {
	Message string `json:"message"`
}

// RestResource implementa Resource sobre uma coleção REST usando resty
type RestResource[T Record] struct {
	client *resty.Client
	path   string
}

// NewRestResource cria um recurso para a coleção informada, ex: "professores"
func NewRestResource[T Record](client *resty.Client, name string) *RestResource[T] {
	return &RestResource[T]{
		client: client,
		path:   "/" + name,
	}
}

// List executa GET /{resource}
func (r *RestResource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&items).
		SetError(&apiError{}).
		Get(r.path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, remoteError(resp)
	}
	return items, nil
}

// Search executa GET /{resource}?nome={q}
func (r *RestResource[T]) Search(ctx context.Context, nome string) ([]T, error) {
	var items []T
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("nome", nome).
		SetResult(&items).
		SetError(&apiError{}).
		Get(r.path)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, remoteError(resp)
	}
	return items, nil
}

// Create executa POST /{resource}; somente 201 é sucesso
func (r *RestResource[T]) Create(ctx context.Context, body any) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(body).
		SetError(&apiError{}).
		Post(r.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.path, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return remoteError(resp)
	}
	return nil
}

// Update executa PUT /{resource}/{id}; somente 204 é sucesso
func (r *RestResource[T]) Update(ctx context.Context, id int, patch any) error {
	if id <= 0 {
		return ErrMissingID
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(patch).
		SetError(&apiError{}).
		Put(r.path + "/" + strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("update %s/%d: %w", r.path, id, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return remoteError(resp)
	}
	return nil
}

func remoteError(resp *resty.Response) error {
	remote := &RemoteError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*apiError); ok && body != nil {
		remote.Message = body.Message
	}
	return remote
}

// messageOr devolve a mensagem enviada pelo servidor ou o texto padrão
func messageOr(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}

// NewAPIClient cria o cliente HTTP compartilhado pelos recursos
func NewAPIClient(cfg *Config) *resty.Client {
	return resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}
