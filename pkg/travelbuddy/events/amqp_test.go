package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vitravelbuddy/travelbuddy/pkg/travelbuddy/models"
)

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeChannel struct {
	keys       []string
	bodies     [][]byte
	closed     bool
	publishErr error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	if exchange != Exchange {
		return errors.New("wrong exchange " + exchange)
	}
	c.keys = append(c.keys, key)
	c.bodies = append(c.bodies, msg.Body)
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

// fakeBroker hands out a fresh connection and channel per dial.
type fakeBroker struct {
	dials    int
	dialErr  error
	conns    []*fakeConn
	channels []*fakeChannel
}

func (b *fakeBroker) dial(string) (io.Closer, amqpChannel, error) {
	b.dials++
	if b.dialErr != nil {
		return nil, nil, b.dialErr
	}
	conn, ch := &fakeConn{}, &fakeChannel{}
	b.conns = append(b.conns, conn)
	b.channels = append(b.channels, ch)
	return conn, ch, nil
}

func TestAMQPSinkSend(t *testing.T) {
	broker := &fakeBroker{}
	sink, err := newAMQPSink("amqp://test", broker.dial)
	if err != nil {
		t.Fatalf("newAMQPSink failed: %v", err)
	}
	defer sink.Close()

	e := ListingEvent(ListingCreated, models.ListingRef{Type: models.ListingOuting, ID: "o1"}, "u1")
	if err := sink.Send(context.Background(), e); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	ch := broker.channels[0]
	if len(ch.keys) != 1 || ch.keys[0] != "listing.created.outing" {
		t.Fatalf("Unexpected routing keys %v", ch.keys)
	}
	var got Event
	if err := json.Unmarshal(ch.bodies[0], &got); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if got.ListingID != "o1" || got.Type != ListingCreated {
		t.Errorf("Unexpected event %+v", got)
	}
}

func TestAMQPSinkRedialsClosedChannel(t *testing.T) {
	broker := &fakeBroker{}
	sink, err := newAMQPSink("amqp://test", broker.dial)
	if err != nil {
		t.Fatalf("newAMQPSink failed: %v", err)
	}
	defer sink.Close()

	// broker closes the channel
	broker.channels[0].closed = true

	if err := sink.Send(context.Background(), SessionEvent(SignedIn, "u1", "s1")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if broker.dials != 2 {
		t.Fatalf("Expected a redial, got %d dials", broker.dials)
	}
	if !broker.conns[0].closed {
		t.Error("Expected the old connection to be closed")
	}
	if len(broker.channels[1].keys) != 1 {
		t.Errorf("Expected the event on the new channel, got %v", broker.channels[1].keys)
	}
}

func TestAMQPSinkPublishFailure(t *testing.T) {
	broker := &fakeBroker{}
	sink, err := newAMQPSink("amqp://test", broker.dial)
	if err != nil {
		t.Fatalf("newAMQPSink failed: %v", err)
	}
	defer sink.Close()

	broker.channels[0].publishErr = errors.New("channel/connection is not open")
	e := SessionEvent(SignedOut, "u1", "s1")
	if err := sink.Send(context.Background(), e); err == nil {
		t.Fatal("Expected publish error")
	}

	// the failed channel is dropped and the next send redials
	if err := sink.Send(context.Background(), e); err != nil {
		t.Fatalf("Send after failure: %v", err)
	}
	if broker.dials != 2 || len(broker.channels[1].keys) != 1 {
		t.Errorf("Expected one redial and one publish, got %d dials", broker.dials)
	}

	// broker stays down
	broker.channels[1].closed = true
	broker.dialErr = errors.New("connection refused")
	if err := sink.Send(context.Background(), e); err == nil {
		t.Error("Expected dial error to be returned")
	}
}

func TestAMQPSinkDialError(t *testing.T) {
	broker := &fakeBroker{dialErr: errors.New("connection refused")}
	if _, err := newAMQPSink("amqp://test", broker.dial); err == nil {
		t.Fatal("Expected dial error")
	}
}
