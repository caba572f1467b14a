package markers

import (
	"sync"
	"time"
)

// Blink - хэндл одного таймера мигания
type Blink struct {
	issueID string
	ticker  *time.Ticker
	stop    chan struct{}
}

// Blinker владеет не более чем одним таймером мигания.
// Start всегда останавливает предыдущий таймер до запуска нового.
type Blinker struct {
	mu       sync.Mutex
	interval time.Duration
	active   *Blink
	wg       sync.WaitGroup
}

func NewBlinker(interval time.Duration) *Blinker {
	if interval <= 0 {
		interval = 600 * time.Millisecond
	}
	return &Blinker{interval: interval}
}

// Start запускает мигание маркера issueID. tick вызывается из отдельной горутины
// с чередующейся интенсивностью 2, 1, 2, ... и самим хэндлом, чтобы получатель мог
// отбросить тик устаревшего таймера.
func (b *Blinker) Start(issueID string, tick func(h *Blink, intensity int)) *Blink {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	h := &Blink{
		issueID: issueID,
		ticker:  time.NewTicker(b.interval),
		stop:    make(chan struct{}),
	}
	b.active = h

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		intensity := 1
		for {
			select {
			case <-h.stop:
				return
			case <-h.ticker.C:
				intensity = 3 - intensity
				tick(h, intensity)
			}
		}
	}()
	return h
}

// Stop останавливает активный таймер. Не ждет завершения горутины,
// поэтому безопасен под чужими блокировками.
func (b *Blinker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Blinker) stopLocked() {
	if b.active == nil {
		return
	}
	b.active.ticker.Stop()
	close(b.active.stop)
	b.active = nil
}

// IsActive сообщает, является ли h текущим таймером
func (b *Blinker) IsActive(h *Blink) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return h != nil && b.active == h
}

// ActiveIssue - ID мигающего маркера или ""
func (b *Blinker) ActiveIssue() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return ""
	}
	return b.active.issueID
}

// Wait дожидается выхода всех горутин мигания. Вызывать после Stop.
func (b *Blinker) Wait() {
	b.wg.Wait()
}
