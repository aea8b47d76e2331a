// Package sms contains the offline notification adapter. No real SMS
// gateway is wired up; the simulator logs the message that would be sent,
// which is enough for local runs and the demo flow.
package sms

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/ports/secondary"
)

// Simulator implements secondary.Notifier by logging the outbound message.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a logging SMS simulator.
func NewSimulator(logger *zap.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// Notify logs the text message that a real gateway would send.
func (s *Simulator) Notify(_ context.Context, phoneNumber, question, answer string) error {
	body := fmt.Sprintf("Hi! You asked us: %q. Here's the answer: %s", question, answer)
	s.logger.Info("simulated sms sent",
		zap.String("to", phoneNumber),
		zap.String("body", body),
	)
	return nil
}

// Ensure Simulator implements the interface
var _ secondary.Notifier = (*Simulator)(nil)
