package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://brasilapi.com.br"

// Client queries the BrasilAPI CNPJ endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

var _ Lookup = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type cnpjResponse struct {
	CNPJ                       string          `json:"cnpj"`
	RazaoSocial                string          `json:"razao_social"`
	NomeFantasia               string          `json:"nome_fantasia"`
	DescricaoSituacaoCadastral string          `json:"descricao_situacao_cadastral"`
	Logradouro                 string          `json:"logradouro"`
	Numero                     string          `json:"numero"`
	Complemento                string          `json:"complemento"`
	Bairro                     string          `json:"bairro"`
	Municipio                  string          `json:"municipio"`
	UF                         string          `json:"uf"`
	CEP                        string          `json:"cep"`
	DDDTelefone1               string          `json:"ddd_telefone_1"`
	Email                      *string         `json:"email"`
	DataInicioAtividade        string          `json:"data_inicio_atividade"`
	CapitalSocial              decimal.Decimal `json:"capital_social"`
	CNAEFiscal                 json.Number     `json:"cnae_fiscal"`
	CNAEFiscalDescricao        string          `json:"cnae_fiscal_descricao"`
	CNAEsSecundarios           []struct {
		Codigo    json.Number `json:"codigo"`
		Descricao string      `json:"descricao"`
	} `json:"cnaes_secundarios"`
	OpcaoPeloSimples *bool `json:"opcao_pelo_simples"`
	OpcaoPeloMEI     *bool `json:"opcao_pelo_mei"`
	QSA              []struct {
		NomeSocio            string `json:"nome_socio"`
		QualificacaoSocio    string `json:"qualificacao_socio"`
		DataEntradaSociedade string `json:"data_entrada_sociedade"`
	} `json:"qsa"`
}

func (c *Client) Fetch(ctx context.Context, taxID string) (*store.RegistryData, error) {
	digits := utils.DigitsOnly(taxID)
	if len(digits) != 14 {
		return nil, ErrInvalidID
	}

	url := fmt.Sprintf("%s/api/cnpj/v1/%s", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body cnpjResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return body.toRegistryData(digits, c.now().UTC()), nil
}

func (r *cnpjResponse) toRegistryData(digits string, fetchedAt time.Time) *store.RegistryData {
	data := &store.RegistryData{
		TaxID:           digits,
		LegalName:       strings.TrimSpace(r.RazaoSocial),
		TradeName:       strings.TrimSpace(r.NomeFantasia),
		Status:          strings.TrimSpace(r.DescricaoSituacaoCadastral),
		Street:          r.Logradouro,
		Number:          r.Numero,
		Complement:      r.Complemento,
		District:        r.Bairro,
		City:            r.Municipio,
		State:           r.UF,
		ZipCode:         r.CEP,
		Phone:           r.DDDTelefone1,
		FoundedAt:       r.DataInicioAtividade,
		ShareCapital:    r.CapitalSocial,
		PrimaryCNAE:     r.CNAEFiscal.String(),
		PrimaryActivity: r.CNAEFiscalDescricao,
		FetchedAt:       fetchedAt,
	}
	if r.Email != nil {
		data.Email = *r.Email
	}
	if r.OpcaoPeloSimples != nil {
		data.SimplesNacional = *r.OpcaoPeloSimples
	}
	if r.OpcaoPeloMEI != nil {
		data.MEI = *r.OpcaoPeloMEI
	}
	for _, cnae := range r.CNAEsSecundarios {
		// BrasilAPI reports "no secondary activity" as code 0.
		if code, err := strconv.Atoi(cnae.Codigo.String()); err == nil && code == 0 {
			continue
		}
		data.SecondaryCNAEs = append(data.SecondaryCNAEs, cnae.Codigo.String())
	}
	for _, p := range r.QSA {
		data.Partners = append(data.Partners, store.Partner{
			Name:          p.NomeSocio,
			Qualification: p.QualificacaoSocio,
			EnteredAt:     p.DataEntradaSociedade,
		})
	}
	return data
}
