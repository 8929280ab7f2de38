package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client queries the judicial-registry provider for case data. It is a pure
// I/O boundary: one fetch per call, no retries. Retry policy belongs to the
// caller so batch pacing stays predictable.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a registry client for the given provider base URL.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// caseLookupResponse is the provider's answer to a docket lookup.
type caseLookupResponse struct {
	Procesos []struct {
		IDProceso int64   `json:"idProceso"`
		Despacho  *string `json:"despacho"`
	} `json:"procesos"`
}

// actuationsResponse is the provider's actuation listing for a case.
type actuationsResponse struct {
	Actuaciones []struct {
		FechaActuacion string  `json:"fechaActuacion"`
		Actuacion      string  `json:"actuacion"`
		Anotacion      *string `json:"anotacion"`
		FechaInicial   *string `json:"fechaInicial"`
		FechaFinal     *string `json:"fechaFinal"`
	} `json:"actuaciones"`
}

// FetchByDocket queries the provider for a single case and returns its
// normalized snapshot. An unknown docket yields a successful empty snapshot;
// transport failures, non-2xx statuses, and malformed payloads yield a
// *FetchError.
func (c *Client) FetchByDocket(ctx context.Context, docket string) (*Snapshot, error) {
	lookupURL := fmt.Sprintf("%s/Procesos/Consulta/NumeroRadicacion?numero=%s&SoloActivos=false&pagina=1",
		c.baseURL, url.QueryEscape(docket))

	var lookup caseLookupResponse
	notFound, err := c.getJSON(ctx, docket, lookupURL, &lookup)
	if err != nil {
		return nil, err
	}
	if notFound || len(lookup.Procesos) == 0 {
		c.logger.Debug("docket unknown to registry", "docket", docket)
		return &Snapshot{Docket: docket}, nil
	}

	head := lookup.Procesos[0]
	snapshot := &Snapshot{
		Docket: docket,
		Forum:  normalizeForum(head.Despacho),
	}

	actURL := fmt.Sprintf("%s/Proceso/Actuaciones/%d?pagina=1", c.baseURL, head.IDProceso)
	var acts actuationsResponse
	notFound, err = c.getJSON(ctx, docket, actURL, &acts)
	if err != nil {
		return nil, err
	}
	if notFound {
		// Case exists but has no actuation record yet.
		return snapshot, nil
	}

	for _, raw := range acts.Actuaciones {
		date, err := parseProviderDate(raw.FechaActuacion)
		if err != nil {
			return nil, &FetchError{Docket: docket, Err: fmt.Errorf("%w: actuation date %q", errMalformedPayload, raw.FechaActuacion)}
		}
		annotation := ""
		if raw.Anotacion != nil {
			annotation = strings.TrimSpace(*raw.Anotacion)
		}
		act := Actuation{
			Date:       date,
			Type:       strings.TrimSpace(raw.Actuacion),
			Annotation: annotation,
			StartDate:  parseOptionalDate(raw.FechaInicial),
			EndDate:    parseOptionalDate(raw.FechaFinal),
		}
		snapshot.Actuations = append(snapshot.Actuations, act)

		if snapshot.MostRecentDate == nil || date.After(*snapshot.MostRecentDate) {
			d := date
			snapshot.MostRecentDate = &d
			snapshot.MostRecentType = act.Type
			snapshot.MostRecentDesc = act.Annotation
			if snapshot.MostRecentDesc == "" {
				snapshot.MostRecentDesc = act.Type
			}
		}
	}

	return snapshot, nil
}

// getJSON performs one GET and decodes the body. Returns notFound=true on 404.
func (c *Client) getJSON(ctx context.Context, docket, rawURL string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, &FetchError{Docket: docket, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &FetchError{Docket: docket, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return false, &FetchError{Docket: docket, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &FetchError{Docket: docket, Err: fmt.Errorf("%w: %v", errMalformedPayload, err)}
	}
	return false, nil
}

func normalizeForum(despacho *string) *string {
	if despacho == nil {
		return nil
	}
	forum := strings.Join(strings.Fields(*despacho), " ")
	if forum == "" {
		return nil
	}
	return &forum
}

// providerDateLayouts covers the date shapes the provider has been seen to
// emit. Fields are not consistently typed across endpoints.
var providerDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

func parseProviderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range providerDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseOptionalDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := parseProviderDate(*value)
	if err != nil {
		return nil
	}
	return &t
}
