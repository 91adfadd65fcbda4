package stream

import (
	"context"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/anim8/animator"
	"github.com/sgostarter/i/l"
)

// A Sink receives every rendered frame.
type Sink interface {
	Send(f *Frame) error
}

// MqttSink publishes frames as binary to an ledrx device.
type MqttSink struct {
	client mqtt.Client
	topic  string
}

// NewMqttSink creates an instance of a MqttSink.
func NewMqttSink(client mqtt.Client, topic string) *MqttSink {
	s := new(MqttSink)
	s.client = client
	s.topic = topic
	return s
}

func (s *MqttSink) Send(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 2, false, b)
	token.Wait()
	return token.Error()
}

// Streamer ticks the animation loop at the frame rate and streams the strip to
// a sink. Everything touching the loop goes through Do.
type Streamer struct {
	logger    l.Wrapper
	mu        sync.Mutex
	loop      *animator.Loop
	strip     *Strip
	sink      Sink
	frameRate float64
	latest    *Frame
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(loop *animator.Loop, strip *Strip, sink Sink, frameRate float64, logger l.Wrapper) *Streamer {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	s := new(Streamer)
	s.logger = logger.WithFields(l.StringField(l.ClsKey, "streamerImpl"))
	s.loop = loop
	s.strip = strip
	s.sink = sink
	s.frameRate = frameRate
	s.latest = strip.Frame()
	loop.SetLive(true)
	return s
}

// Do runs fn while holding the loop.
func (s *Streamer) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Latest returns the last frame sent.
func (s *Streamer) Latest() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// SendFrame advances the loop to now milliseconds and sends the resulting frame.
func (s *Streamer) SendFrame(now float64) error {
	s.mu.Lock()
	s.loop.Tick(now)
	f := s.strip.Frame()
	s.latest = f
	s.mu.Unlock()

	if s.sink == nil {
		return nil
	}
	return s.sink.Send(f)
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / s.frameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-publishTimer.C:
			now := float64(t.Sub(start)) / float64(time.Millisecond)
			if err := s.SendFrame(now); err != nil {
				s.logger.WithFields(l.ErrorField(err)).Error("send frame")
			}
		}
	}
}
