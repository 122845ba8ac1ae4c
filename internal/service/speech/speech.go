package speech

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vanthinh296/say-function/internal/service/tts"
	"go.uber.org/zap"
)

// Speaker произносит короткое сообщение пользователю.
type Speaker interface {
	Message(text string) error
}

// Log «произносит» сообщение в лог и, если задан, в writer (консоль).
type Log struct {
	logger *zap.SugaredLogger
	out    io.Writer
}

func NewLog(logger *zap.SugaredLogger, out io.Writer) *Log {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Log{logger: logger, out: out}
}

func (l *Log) Message(text string) error {
	l.logger.Infow("Speech", "text", text)
	if l.out == nil {
		return nil
	}
	_, err := fmt.Fprintln(l.out, text)
	return err
}

// Queue — буфер фиксированной ёмкости для фраз, синтезируемых в отдельной горутине,
// чтобы сетевой синтез не задерживал обработку жестов.
type Queue struct {
	synth  tts.Synthesizer
	logger *zap.SugaredLogger

	cap      int
	messages []string
	mu       sync.Mutex
	notify   chan struct{}
}

func NewQueue(synth tts.Synthesizer, capacity int, logger *zap.SugaredLogger) *Queue {
	if capacity <= 0 {
		capacity = 8
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Queue{
		synth:    synth,
		logger:   logger,
		cap:      capacity,
		messages: make([]string, 0, capacity),
		notify:   make(chan struct{}, 1),
	}
}

// Message ставит фразу в очередь; при переполнении удаляется самая старая.
func (q *Queue) Message(text string) error {
	if text == "" {
		return nil
	}
	q.mu.Lock()
	if len(q.messages) == q.cap {
		copy(q.messages, q.messages[1:])
		q.messages = q.messages[:q.cap-1]
	}
	q.messages = append(q.messages, text)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Drain возвращает все фразы и очищает буфер.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	msgs := make([]string, len(q.messages))
	copy(msgs, q.messages)
	q.messages = q.messages[:0]
	q.mu.Unlock()
	return msgs
}

func (q *Queue) Len() int {
	q.mu.Lock()
	l := len(q.messages)
	q.mu.Unlock()
	return l
}

// Run синтезирует фразы по мере поступления до отмены контекста.
// Ошибки синтеза логируются, цикл продолжается.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-q.notify:
		}
		for _, text := range q.Drain() {
			if err := q.synth.Synthesize(ctx, text); err != nil {
				if ctx.Err() != nil {
					return context.Cause(ctx)
				}
				q.logger.Warnw("Speech synthesis failed", "text", text, "error", err)
			}
		}
	}
}
