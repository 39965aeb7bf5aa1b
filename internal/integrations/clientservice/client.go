package clientservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с ClientService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ClientService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClient получает профиль клиента по его идентификатору
func (c *Client) GetClient(ctx context.Context, clientUUID uuid.UUID) (*ClientProfile, error) {
	url := fmt.Sprintf("%s/internal/clients/%s", c.baseURL, clientUUID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid client UUID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var profile ClientProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetClientWithGracefulDegradation получает профиль клиента с graceful degradation.
// Отсутствие клиента остается бизнес-ошибкой, а недоступность сервиса
// превращается в ErrServiceDegraded: запись создается с пустыми именами.
func (c *Client) GetClientWithGracefulDegradation(ctx context.Context, clientUUID uuid.UUID) (*ClientProfile, error) {
	c.log.Info("Fetching client profile for client_uuid=%s", clientUUID)

	profile, err := c.GetClient(ctx, clientUUID)
	if err != nil {
		// Если клиента не существует, пробрасываем ошибку дальше -
		// запись для несуществующего клиента создавать нельзя
		if err == ErrClientNotFound {
			c.log.Info("Client not found for client_uuid=%s", clientUUID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout,
		// ошибки парсинга) применяем graceful degradation
		c.log.Error("ClientService unavailable, applying graceful degradation for client_uuid=%s: %v", clientUUID, err)
		return nil, fmt.Errorf("%w: client_uuid=%s, error=%v", ErrServiceDegraded, clientUUID, err)
	}

	c.log.Info("Successfully fetched client profile for client_uuid=%s", clientUUID)
	return profile, nil
}
