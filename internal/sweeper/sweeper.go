package sweeper

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
)

// Notifier delivers the expiry notice. Delivery failure is logged and
// ignored: the cleared grant is authoritative either way.
type Notifier func(ctx context.Context, userID int64) error

// Sweeper revokes elapsed premium grants on a fixed interval.
type Sweeper struct {
	store    types.AccountStore
	notify   Notifier
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

func New(accounts types.AccountStore, notify Notifier, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		store:    accounts,
		notify:   notify,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Sweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Printf("Sweeper started, interval %s", s.interval)

	s.wg.Add(1)
	go s.loop()
}

func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	log.Println("Stopping sweeper...")
	s.cancel()
	s.wg.Wait()
	log.Println("Sweeper stopped")
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	// Run once at start so a restart does not wait out a full interval.
	s.Sweep(time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep clears every grant elapsed as of now in one store update and
// notifies the affected users. Notifications run off the sweep
// goroutine so one blocked recipient cannot stall the rest. A second
// sweep with no time change matches no rows.
func (s *Sweeper) Sweep(now time.Time) int {
	expired, err := s.store.ExpireDue(now)
	if err != nil {
		log.Printf("Sweeper: expiry query failed: %v", err)
		return 0
	}
	if len(expired) == 0 {
		return 0
	}

	log.Printf("Sweeper: expired %d premium grants", len(expired))

	if s.notify != nil {
		for _, userID := range expired {
			userID := userID
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := s.notify(ctx, userID); err != nil {
					log.Printf("Sweeper: could not notify user %d: %v", userID, err)
				}
			}()
		}
	}
	return len(expired)
}
