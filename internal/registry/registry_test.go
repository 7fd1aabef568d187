package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farxc/carteira-devedores/internal/logger"
	mock_registry "github.com/farxc/carteira-devedores/internal/registry/mocks"
	"github.com/farxc/carteira-devedores/internal/store"
	"go.uber.org/mock/gomock"
)

const cnpjPayload = `{
	"cnpj": "12345678000190",
	"razao_social": "ACME COMERCIO LTDA",
	"nome_fantasia": "ACME",
	"descricao_situacao_cadastral": "ATIVA",
	"logradouro": "RUA A",
	"numero": "10",
	"bairro": "CENTRO",
	"municipio": "SAO PAULO",
	"uf": "SP",
	"cep": "01001000",
	"email": null,
	"data_inicio_atividade": "2001-02-03",
	"capital_social": 150000.5,
	"cnae_fiscal": 4711302,
	"cnae_fiscal_descricao": "Comercio varejista",
	"cnaes_secundarios": [{"codigo": 0, "descricao": ""}, {"codigo": 4721102, "descricao": "Padaria"}],
	"opcao_pelo_simples": true,
	"opcao_pelo_mei": null,
	"qsa": [{"nome_socio": "FULANO", "qualificacao_socio": "Socio-Administrador", "data_entrada_sociedade": "2001-02-03"}]
}`

func TestClientFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/cnpj/v1/12345678000190" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cnpjPayload))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second)
		data, err := c.Fetch(context.Background(), "12.345.678/0001-90")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data.LegalName != "ACME COMERCIO LTDA" || data.State != "SP" || data.Status != "ATIVA" {
			t.Fatalf("unexpected data %+v", data)
		}
		if data.PrimaryCNAE != "4711302" || len(data.SecondaryCNAEs) != 1 || data.SecondaryCNAEs[0] != "4721102" {
			t.Fatalf("unexpected cnaes %+v / %+v", data.PrimaryCNAE, data.SecondaryCNAEs)
		}
		if !data.SimplesNacional || data.MEI {
			t.Fatalf("unexpected regime flags simples=%v mei=%v", data.SimplesNacional, data.MEI)
		}
		if data.ShareCapital.String() != "150000.5" {
			t.Fatalf("unexpected capital %s", data.ShareCapital)
		}
		if len(data.Partners) != 1 || data.Partners[0].Name != "FULANO" {
			t.Fatalf("unexpected partners %+v", data.Partners)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "12345678000190")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), "12345678000190")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := NewClient("http://unused", time.Second).Fetch(context.Background(), "123")
		if !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestCachedLookupWithoutRedisPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_registry.NewMockLookup(ctrl)

	next.EXPECT().Fetch(gomock.Any(), "12345678000190").Return(&store.RegistryData{LegalName: "ACME"}, nil).Times(2)

	c := NewCachedLookup(next, nil, time.Hour, logger.Discard())
	for i := 0; i < 2; i++ {
		data, err := c.Fetch(context.Background(), "12345678000190")
		if err != nil || data.LegalName != "ACME" {
			t.Fatalf("unexpected result %+v err=%v", data, err)
		}
	}
}

func TestCachedLookupPropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	next := mock_registry.NewMockLookup(ctrl)

	next.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, ErrUnavailable)

	_, err := NewCachedLookup(next, nil, time.Hour, logger.Discard()).Fetch(context.Background(), "12345678000190")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewWithoutCache(t *testing.T) {
	cases := []struct {
		name     string
		redisURL string
	}{
		{"no redis url", ""},
		{"unparsable redis url", "not-a-redis-url"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lookup, closeFn := New(context.Background(), Config{BaseURL: "http://registry.local", Timeout: time.Second, RedisURL: c.redisURL}, logger.Discard())
			defer closeFn()

			client, ok := lookup.(*Client)
			if !ok {
				t.Fatalf("expected plain client, got %T", lookup)
			}
			if client.baseURL != "http://registry.local" {
				t.Fatalf("expected configured base url, got %s", client.baseURL)
			}
		})
	}
}
