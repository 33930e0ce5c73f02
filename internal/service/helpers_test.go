package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shop-backend/internal/models"
	"shop-backend/internal/payment"
	"shop-backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate())
	return r
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock uint) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price, Active: true}
	require.NoError(t, r.DB.Create(&p).Error)
	require.NoError(t, r.DB.Create(&models.Inventory{ProductID: p.ID, Stock: stock}).Error)
	return p
}

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := event.(map[string]any)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *fakePublisher) byType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Event["type"] == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeGateway struct {
	sessionCalls int
	lastOrder    *models.Order
	lastItems    []payment.LineItem
	sessionErr   error

	event    *payment.Event
	eventErr error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, order *models.Order, items []payment.LineItem) (*payment.Session, error) {
	g.sessionCalls++
	g.lastOrder = order
	g.lastItems = items
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return &payment.Session{
		ID:  "cs_test_1",
		URL: "https://checkout.example.com/pay/cs_test_1",
	}, nil
}

func (g *fakeGateway) ConstructEvent(payload []byte, sigHeader string) (*payment.Event, error) {
	if g.eventErr != nil {
		return nil, g.eventErr
	}
	return g.event, nil
}
