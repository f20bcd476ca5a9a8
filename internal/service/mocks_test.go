package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"terra-form/internal/domain"
	"terra-form/internal/mailer"
	"terra-form/internal/repository"
)

// Mock repositories for testing
type mockProductRepository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
	err      error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	product.ID = m.nextID
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return m.err
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	products := []*domain.Product{}
	for _, p := range m.products {
		if filter.Category != "" && (p.Category == nil || *p.Category != filter.Category) {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products), m.err
}

type mockTestimonialRepository struct {
	testimonials map[int64]*domain.Testimonial
	nextID       int64
}

func newMockTestimonialRepository() *mockTestimonialRepository {
	return &mockTestimonialRepository{testimonials: make(map[int64]*domain.Testimonial)}
}

func (m *mockTestimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	m.nextID++
	testimonial.ID = m.nextID
	testimonial.Featured = true
	stored := *testimonial
	m.testimonials[testimonial.ID] = &stored
	return nil
}

func (m *mockTestimonialRepository) Delete(ctx context.Context, id int64) error {
	delete(m.testimonials, id)
	return nil
}

func (m *mockTestimonialRepository) ListFeatured(ctx context.Context) ([]*domain.Testimonial, error) {
	testimonials := []*domain.Testimonial{}
	for _, t := range m.testimonials {
		if t.Featured {
			testimonials = append(testimonials, t)
		}
	}
	sort.Slice(testimonials, func(i, j int) bool { return testimonials[i].ID > testimonials[j].ID })
	return testimonials, nil
}

func (m *mockTestimonialRepository) Count(ctx context.Context) (int, error) {
	return len(m.testimonials), nil
}

type mockAdminConfigRepository struct {
	values           map[string]string
	setIfAbsentCalls int
}

func newMockAdminConfigRepository() *mockAdminConfigRepository {
	return &mockAdminConfigRepository{values: make(map[string]string)}
}

func (m *mockAdminConfigRepository) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", repository.ErrConfigNotFound
	}
	return value, nil
}

func (m *mockAdminConfigRepository) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockAdminConfigRepository) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	m.setIfAbsentCalls++
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value
	return true, nil
}

type fakeMailer struct {
	enabled bool
	err     error
	sent    []mailer.Message
}

func (f *fakeMailer) Enabled() bool {
	return f.enabled
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}
