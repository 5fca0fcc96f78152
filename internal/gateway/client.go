package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tarotbot/internal/models"
)

// ErrUnavailable is returned when the card backend cannot be reached or
// returns an unusable response and no fresh cache exists.
var ErrUnavailable = errors.New("card backend unavailable")

// cardDTO mirrors the backend's card JSON representation.
type cardDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	RDesc    string `json:"rdesc"`
	Message  string `json:"message"`
	Advice   string `json:"advice"`
	RAdvice  string `json:"radvice"`
	Image    string `json:"image"`
	CardType string `json:"cardtype"`
}

// Client talks to the card backend. The card list is cached for a fixed
// TTL; concurrent refreshes collapse into one request via singleflight.
// A failed refresh fails the call; expired data is never served.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	ttl     time.Duration
	mu      sync.RWMutex
	cache   []models.Card
	fetched time.Time
	group   singleflight.Group

	now func() time.Time
}

// NewClient creates a gateway client for the backend at baseURL.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		ttl:     cacheTTL,
		now:     time.Now,
	}
}

// Cards returns the full card pool, served from cache when it is younger
// than the TTL. Exactly one network fetch runs at a time; all concurrent
// callers share its outcome.
func (c *Client) Cards(ctx context.Context) ([]models.Card, error) {
	c.mu.RLock()
	cache, fetched := c.cache, c.fetched
	c.mu.RUnlock()

	if cache != nil && c.now().Sub(fetched) < c.ttl {
		return cache, nil
	}

	v, err, _ := c.group.Do("cards", func() (interface{}, error) {
		// Another caller may have refreshed while we waited for the
		// flight slot.
		c.mu.RLock()
		cache, fetched := c.cache, c.fetched
		c.mu.RUnlock()
		if cache != nil && c.now().Sub(fetched) < c.ttl {
			return cache, nil
		}

		cards, err := c.fetchCards(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache = cards
		c.fetched = c.now()
		c.mu.Unlock()

		c.logger.Info("Card pool refreshed", zap.Int("cards", len(cards)))
		return cards, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Card), nil
}

func (c *Client) fetchCards(ctx context.Context) ([]models.Card, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/cards/", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch cards", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Card backend returned unexpected status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var dtos []cardDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		c.logger.Error("Failed to decode card list", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cards := make([]models.Card, len(dtos))
	for i, d := range dtos {
		cards[i] = models.Card{
			ID:             d.ID,
			Name:           d.Name,
			ImageURL:       d.Image,
			Description:    d.Desc,
			ReversedDesc:   d.RDesc,
			Message:        d.Message,
			Advice:         d.Advice,
			ReversedAdvice: d.RAdvice,
			CardType:       d.CardType,
		}
	}
	return cards, nil
}

// RegisterUser registers the user with the backend. Registration is
// idempotent: an already-registered user is not an error.
func (c *Client) RegisterUser(ctx context.Context, user models.User) error {
	payload := map[string]interface{}{
		"telegram_id": user.TelegramID,
		"username":    user.Username,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
	}

	status, err := c.postJSON(ctx, "/api/users/register/", payload)
	if err != nil {
		return err
	}
	// 400 means the user already exists; both outcomes are fine.
	if status != http.StatusCreated && status != http.StatusBadRequest {
		return fmt.Errorf("%w: register status %d", ErrUnavailable, status)
	}
	return nil
}

// SaveRequest records a history entry for the user. Callers treat a
// failure as non-fatal and only log it.
func (c *Client) SaveRequest(ctx context.Context, telegramID int64, text string) error {
	payload := map[string]interface{}{
		"telegram_id":  telegramID,
		"request_text": text,
	}

	status, err := c.postJSON(ctx, "/api/users/requests/", payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("%w: save request status %d", ErrUnavailable, status)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
