package controller

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	stripe "github.com/stripe/stripe-go/v79"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
	"github.com/a-nebula-dev/ProjectLaserBunny/payment"
	"github.com/a-nebula-dev/ProjectLaserBunny/sales"
)

type memProductStore struct {
	m map[uint]*model.Product
}

func (s *memProductStore) GetProduct(_ context.Context, id uint) (*model.Product, error) {
	p, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type memSaleStore struct {
	nextID      uint
	m           map[uint]*model.Sale
	failUpdates int // next N UpdateSale calls error out
}

func newMemSaleStore() *memSaleStore {
	return &memSaleStore{nextID: 1, m: map[uint]*model.Sale{}}
}

func (s *memSaleStore) CreateSale(_ context.Context, sale *model.Sale) error {
	sale.ID = s.nextID
	s.nextID++
	cp := *sale
	s.m[sale.ID] = &cp
	return nil
}

func (s *memSaleStore) GetSale(_ context.Context, id uint) (*model.Sale, error) {
	sale, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (s *memSaleStore) GetSaleByOrderNumber(_ context.Context, orderNumber string) (*model.Sale, error) {
	for _, sale := range s.m {
		if sale.OrderNumber == orderNumber {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memSaleStore) UpdateSale(_ context.Context, sale *model.Sale) error {
	if s.failUpdates > 0 {
		s.failUpdates--
		return errors.New("sale store unavailable")
	}
	cp := *sale
	s.m[sale.ID] = &cp
	return nil
}

func (s *memSaleStore) ListSales(_ context.Context, filter sales.ListFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, sale := range s.m {
		if filter.PaymentStatus != "" && string(sale.Payment.Status) != filter.PaymentStatus {
			continue
		}
		out = append(out, *sale)
	}
	return out, int64(len(out)), nil
}

type memDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemDeduper() *memDeduper {
	return &memDeduper{seen: map[string]bool{}}
}

func (d *memDeduper) Processed(_ context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[eventID], nil
}

func (d *memDeduper) MarkProcessed(_ context.Context, eventID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[eventID] = true
	return nil
}

type fakeProvider struct {
	verifier *payment.StripeProvider
	intents  []map[string]string
	fail     bool
}

func newFakeProvider(webhookSecret string) *fakeProvider {
	return &fakeProvider{verifier: payment.NewStripeProvider("", webhookSecret)}
}

func (p *fakeProvider) Configured() bool { return true }

func (p *fakeProvider) CreateIntent(_ context.Context, amountMinor int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	if p.fail {
		return nil, fmt.Errorf("provider unreachable")
	}
	p.intents = append(p.intents, metadata)
	return &payment.Intent{
		ClientSecret: fmt.Sprintf("pi_test_secret_%d", amountMinor),
		IntentID:     "pi_test",
	}, nil
}

func (p *fakeProvider) VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return p.verifier.VerifyEvent(payload, signatureHeader)
}

func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
