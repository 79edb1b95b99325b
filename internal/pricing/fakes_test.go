package pricing

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type fakeProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]Product
	err      error
	calls    int
	failOn   map[uuid.UUID]error
}

func newFakeProducts(products ...Product) *fakeProducts {
	f := &fakeProducts{products: map[uuid.UUID]Product{}, failOn: map[uuid.UUID]error{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) FindProduct(_ context.Context, id uuid.UUID) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.failOn[id]; ok {
		return nil, err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeDiscounts struct {
	mu          sync.Mutex
	groups      []CustomerGroup
	memberships map[uuid.UUID][]uuid.UUID
	assignments []CategoryAssignment
	groupErr    error
	categoryErr error

	groupCalls    int
	categoryCalls int
	listCalls     int
}

func newFakeDiscounts() *fakeDiscounts {
	return &fakeDiscounts{memberships: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeDiscounts) addGroup(g CustomerGroup, buyers ...uuid.UUID) {
	f.groups = append(f.groups, g)
	for _, b := range buyers {
		f.memberships[b] = append(f.memberships[b], g.ID)
	}
}

// ListCustomerGroups only narrows by membership so the lookup's own filtering
// is exercised.
func (f *fakeDiscounts) ListCustomerGroups(_ context.Context, filter CustomerGroupFilter) ([]CustomerGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupCalls++
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	member := map[uuid.UUID]bool{}
	for _, id := range f.memberships[filter.BuyerID] {
		member[id] = true
	}
	var out []CustomerGroup
	for _, g := range f.groups {
		if member[g.ID] {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeDiscounts) FindCategoryAssignment(_ context.Context, productID, categoryID uuid.UUID) (*CategoryAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	for _, a := range f.assignments {
		if a.ProductID == productID && a.CategoryID == categoryID {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeDiscounts) ListCategoryAssignments(_ context.Context, productID uuid.UUID) ([]CategoryAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	var out []CategoryAssignment
	for _, a := range f.assignments {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDiscounts) lookupCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.groupCalls + f.categoryCalls
}

func intPtr(v int) *int { return &v }

func uuidPtr(v uuid.UUID) *uuid.UUID { return &v }
