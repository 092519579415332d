package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/charactercatalog/internal/platform/timeouts"
	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// upstreamPageSize is fixed by the catalog API.
	upstreamPageSize = 10
	peoplePath       = "people/"
	maxResponseBytes = 4 << 20
	tracerName       = "github.com/louisbranch/charactercatalog/internal/services/web/modules/characters"
	unavailableKey   = "errors.upstream.unavailable"
	notFoundKey      = "errors.character.not_found"
)

// GatewayConfig configures the upstream HTTP gateway.
type GatewayConfig struct {
	// BaseURL is the API root, e.g. https://swapi.dev/api. Blank disables
	// the gateway.
	BaseURL string
	// Timeout bounds every upstream call.
	Timeout time.Duration
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// NewHTTPGateway builds the production gateway for the catalog REST API.
func NewHTTPGateway(cfg GatewayConfig) (CharacterGateway, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return unavailableGateway{}, nil
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be an absolute http(s) url", raw)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.UpstreamRequest
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	return httpGateway{
		base:    base,
		client:  client,
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

type httpGateway struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	tracer  trace.Tracer
}

type wireList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []wireCharacter `json:"results"`
}

type wireCharacter struct {
	Name      string   `json:"name"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Gender    string   `json:"gender"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Vehicles  []string `json:"vehicles"`
	Starships []string `json:"starships"`
	Created   string   `json:"created"`
	Edited    string   `json:"edited"`
	URL       string   `json:"url"`
}

type wireRelated struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (g httpGateway) ListCharacters(ctx context.Context, page int, search string) (CharacterPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 1)))
	if search = strings.TrimSpace(search); search != "" {
		query.Set("search", search)
	}
	target := g.base.ResolveReference(&url.URL{Path: peoplePath, RawQuery: query.Encode()})

	var payload wireList
	if err := g.getJSON(ctx, "list_characters", target.String(), &payload); err != nil {
		return CharacterPage{}, fmt.Errorf("list characters page %d: %w", page, err)
	}
	results := make([]Character, 0, len(payload.Results))
	for _, item := range payload.Results {
		record := item.character()
		if record.ID == "" {
			continue
		}
		results = append(results, record)
	}
	return CharacterPage{
		Count:   max(payload.Count, 0),
		HasNext: payload.Next != nil && *payload.Next != "",
		HasPrev: payload.Previous != nil && *payload.Previous != "",
		Results: results,
	}, nil
}

func (g httpGateway) GetCharacter(ctx context.Context, id string) (Character, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Character{}, apperrors.EK(apperrors.KindNotFound, notFoundKey, "character id is required")
	}
	target := g.base.ResolveReference(&url.URL{Path: peoplePath + url.PathEscape(id) + "/"})

	var payload wireCharacter
	if err := g.getJSON(ctx, "get_character", target.String(), &payload); err != nil {
		return Character{}, fmt.Errorf("get character %s: %w", id, err)
	}
	record := payload.character()
	if record.ID == "" {
		record.ID = id
	}
	return record, nil
}

func (g httpGateway) GetRelated(ctx context.Context, rawURL string) (RelatedEntity, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !target.IsAbs() {
		return RelatedEntity{}, apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, "invalid related url "+rawURL, err)
	}
	// Only follow links that point back at the configured API host.
	if !strings.EqualFold(target.Host, g.base.Host) {
		return RelatedEntity{}, apperrors.EK(apperrors.KindUnavailable, unavailableKey, "related url "+rawURL+" is outside the catalog host")
	}

	var payload wireRelated
	if err := g.getJSON(ctx, "get_related", target.String(), &payload); err != nil {
		return RelatedEntity{}, fmt.Errorf("get related %s: %w", rawURL, err)
	}
	label := strings.TrimSpace(payload.Name)
	if label == "" {
		label = strings.TrimSpace(payload.Title)
	}
	if label == "" {
		return RelatedEntity{}, apperrors.EK(apperrors.KindUnavailable, unavailableKey, "related record "+rawURL+" has no name or title")
	}
	return RelatedEntity{URL: rawURL, Label: label}, nil
}

// getJSON performs one traced GET and decodes the JSON body into out.
func (g httpGateway) getJSON(ctx context.Context, operation string, target string, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ctx, span := g.tracer.Start(ctx, "catalog."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodGet,
			semconv.URLFull(target),
			attribute.String("catalog.operation", operation),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, "request failed", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.EK(apperrors.KindNotFound, notFoundKey, "not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, "unexpected response", fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, unavailableKey, "decode response", err)
	}
	return nil
}

func (w wireCharacter) character() Character {
	return Character{
		ID:        idFromURL(w.URL),
		Name:      strings.TrimSpace(w.Name),
		Height:    w.Height,
		Mass:      w.Mass,
		HairColor: w.HairColor,
		SkinColor: w.SkinColor,
		EyeColor:  w.EyeColor,
		BirthYear: w.BirthYear,
		Gender:    w.Gender,
		Homeworld: strings.TrimSpace(w.Homeworld),
		Films:     w.Films,
		Species:   w.Species,
		Vehicles:  w.Vehicles,
		Starships: w.Starships,
		CreatedAt: parseTimestamp(w.Created),
		EditedAt:  parseTimestamp(w.Edited),
	}
}

// parseTimestamp returns the zero time for missing or malformed values.
func parseTimestamp(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return parsed
}
