// Package bus is a small in-process topic bus with retained messages and a
// single-level "+" wildcard. It is the only seam between the sensing core and
// the rest of the firmware, so it has to stay allocation-light and must never
// block a publisher.
package bus

import (
	"strconv"
	"sync"
)

// Wildcard matches exactly one topic level in a subscription.
const Wildcard = "+"

// Topic is a sequence of path levels, e.g. T("tacho", "motor", 0, "value").
type Topic []string

// T builds a topic from strings and ints.
func T(parts ...any) Topic {
	t := make(Topic, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			t = append(t, v)
		case int:
			t = append(t, strconv.Itoa(v))
		default:
			t = append(t, "?")
		}
	}
	return t
}

func (t Topic) String() string {
	s := ""
	for i, lvl := range t {
		if i > 0 {
			s += "/"
		}
		s += lvl
	}
	return s
}

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

type Subscription struct {
	topic Topic
	ch    chan *Message
	bus   *Bus
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.bus.unsubscribe(s) }

type node struct {
	children map[string]*node
	subs     []*Subscription
	retained *Message
}

type Bus struct {
	mu   sync.RWMutex
	root *node
	qLen int
}

// NewBus creates a bus whose subscriber queues hold queueLen messages.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{root: &node{}, qLen: queueLen}
}

// Subscribe registers interest in a topic. Levels may be Wildcard.
func (b *Bus) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, b.qLen),
		bus:   b,
	}

	b.mu.Lock()
	n := b.root
	for _, lvl := range topic {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[lvl]
		if !ok {
			child = &node{}
			n.children[lvl] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	// Deliver retained messages already present under this pattern.
	var retained []*Message
	collectRetained(b.root, topic, &retained)
	b.mu.Unlock()

	for _, m := range retained {
		deliver(sub, m)
	}
	return sub
}

// Publish delivers to every subscription whose pattern matches msg.Topic.
// Full queues drop the oldest message rather than blocking the publisher.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	matchSubs(b.root, msg.Topic, msg)

	if msg.Retained {
		n := b.root
		for _, lvl := range msg.Topic {
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			child, ok := n.children[lvl]
			if !ok {
				child = &node{}
				n.children[lvl] = child
			}
			n = child
		}
		if msg.Payload == nil {
			n.retained = nil
		} else {
			n.retained = msg
		}
	}
	b.mu.Unlock()
}

// matchSubs walks the subscription trie; a Wildcard child matches any level.
func matchSubs(n *node, topic Topic, msg *Message) {
	if n == nil {
		return
	}
	if len(topic) == 0 {
		for _, sub := range n.subs {
			deliver(sub, msg)
		}
		return
	}
	if n.children == nil {
		return
	}
	matchSubs(n.children[topic[0]], topic[1:], msg)
	matchSubs(n.children[Wildcard], topic[1:], msg)
}

// collectRetained finds retained messages matching a (possibly wildcarded)
// subscription pattern.
func collectRetained(n *node, pattern Topic, out *[]*Message) {
	if n == nil {
		return
	}
	if len(pattern) == 0 {
		if n.retained != nil {
			*out = append(*out, n.retained)
		}
		return
	}
	if n.children == nil {
		return
	}
	if pattern[0] == Wildcard {
		for _, child := range n.children {
			collectRetained(child, pattern[1:], out)
		}
		return
	}
	collectRetained(n.children[pattern[0]], pattern[1:], out)
}

func deliver(sub *Subscription, msg *Message) {
	select {
	case sub.ch <- msg:
	default:
		// Drop oldest so a stalled consumer still sees fresh data.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	var stack []*node
	for _, lvl := range sub.topic {
		if n.children == nil {
			return
		}
		child, ok := n.children[lvl]
		if !ok {
			return
		}
		stack = append(stack, n)
		n = child
	}

	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}

	// Prune empty nodes bottom-up.
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent := stack[i]
		key := sub.topic[i]
		child := parent.children[key]
		if len(child.subs) == 0 && len(child.children) == 0 && child.retained == nil {
			delete(parent.children, key)
		} else {
			break
		}
	}
}
