package rabbitmq

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

func TestRoutingKey(t *testing.T) {
	ev := domain.CatalogEvent{Type: domain.EventMovieDeleted}
	if got := RoutingKey(ev); got != "movie.deleted" {
		t.Fatalf("expected movie.deleted, got %s", got)
	}
}

func TestNewPublisher_DefaultExchange(t *testing.T) {
	if p := NewPublisher("amqp://localhost", ""); p.exchange != DefaultExchange {
		t.Fatalf("expected %s, got %s", DefaultExchange, p.exchange)
	}
}

func TestPublish_DialFailureIsReturned(t *testing.T) {
	p := NewPublisher("amqp://broker", "x")
	dialErr := errors.New("connection refused")
	calls := 0
	p.dial = func(string) (*amqp.Connection, error) {
		calls++
		return nil, dialErr
	}

	if err := p.Publish(context.Background(), domain.CatalogEvent{ID: "1"}); !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
	if err := p.Publish(context.Background(), domain.CatalogEvent{ID: "2"}); !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a redial per publish, got %d dials", calls)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close without connection: %v", err)
	}
}
