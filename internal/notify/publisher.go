package notify

import "go.uber.org/zap"

// Publisher pairs the bus with a persistence hook so every published notice
// is also written to the notifications table. Persistence failures are
// logged, not fatal: a lost record is still better than the old behavior of
// losing the event entirely when no listener was mounted.
type Publisher struct {
	bus    *Bus
	save   func(Notice) error
	logger *zap.Logger
}

func NewPublisher(bus *Bus, save func(Notice) error, logger *zap.Logger) *Publisher {
	return &Publisher{bus: bus, save: save, logger: logger}
}

func (p *Publisher) Notify(n Notice) Notice {
	n = p.bus.Publish(n)
	if p.save != nil {
		if err := p.save(n); err != nil {
			p.logger.Warn("persist notification failed",
				zap.String("id", n.ID), zap.Error(err))
		}
	}
	return n
}
