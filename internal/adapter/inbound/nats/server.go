// Package nats serves catalog requests over NATS request/reply.
//
// A request is published to <prefix>.<request name> (for example
// "overwatch.rpc.catalog.get_item") with a JSON payload; the reply is a
// JSON Reply.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"google.golang.org/grpc/codes"

	"github.com/0xsj/overwatch-pkg/log"

	"github.com/0xsj/overwatch-mediator/internal/adapter/inbound/route"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
	"github.com/0xsj/overwatch-mediator/pkg/validation"
)

const (
	defaultSubjectPrefix  = "overwatch.rpc"
	defaultQueueGroup     = "catalog"
	defaultRequestTimeout = 10 * time.Second
)

// Dispatcher sends a request to its handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, req mediator.AnyRequest) (any, error)
}

// ServerConfig holds configuration for the NATS request server.
type ServerConfig struct {
	SubjectPrefix  string
	QueueGroup     string
	RequestTimeout time.Duration
}

// Reply is the response to a NATS request.
type Reply struct {
	Result map[string]any `json:"result,omitempty"`
	Error  *ReplyError    `json:"error,omitempty"`
}

// ReplyError describes a failed request. Code is the gRPC code name.
type ReplyError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// Server answers catalog requests on NATS.
type Server struct {
	conn       *nats.Conn
	dispatcher Dispatcher
	routes     *route.Table
	config     ServerConfig
	logger     log.Logger

	mu  sync.Mutex
	sub *nats.Subscription
}

// NewServer creates a new NATS request server.
func NewServer(cfg ServerConfig, conn *nats.Conn, dispatcher Dispatcher, logger log.Logger) *Server {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaultSubjectPrefix
	}
	if cfg.QueueGroup == "" {
		cfg.QueueGroup = defaultQueueGroup
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if logger == nil {
		logger = log.NewPretty(log.DefaultConfig())
	}
	return &Server{
		conn:       conn,
		dispatcher: dispatcher,
		routes:     route.Catalog(),
		config:     cfg,
		logger:     logger,
	}
}

// Subject returns the subject a named request is served on.
func (s *Server) Subject(name string) string {
	return s.config.SubjectPrefix + "." + name
}

// Start subscribes to every catalog request subject.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return fmt.Errorf("nats server already started")
	}

	sub, err := s.conn.QueueSubscribe(s.config.SubjectPrefix+".>", s.config.QueueGroup, s.handle)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	s.sub = sub

	s.logger.Info("nats request server started",
		log.String("subject", sub.Subject),
		log.String("queue", s.config.QueueGroup),
		log.Any("requests", s.routes.Names()),
	)
	return nil
}

// Stop drains the subscription so in-flight requests complete.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub == nil {
		return nil
	}
	err := s.sub.Drain()
	s.sub = nil

	s.logger.Info("nats request server stopped")
	return err
}

func (s *Server) handle(msg *nats.Msg) {
	name := strings.TrimPrefix(msg.Subject, s.config.SubjectPrefix+".")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
	defer cancel()

	reply := s.safeDispatch(ctx, name, msg.Data)
	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(reply)
	if err != nil {
		s.logger.Error("failed to marshal nats reply",
			log.String("request", name),
			log.String("error", err.Error()),
		)
		return
	}

	if err := msg.Respond(data); err != nil {
		s.logger.Warn("failed to respond to nats request",
			log.String("request", name),
			log.String("error", err.Error()),
		)
	}
}

// safeDispatch turns a handler panic into an Internal reply so one request
// cannot take down the subscription.
func (s *Server) safeDispatch(ctx context.Context, name string, payload []byte) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while serving nats request",
				log.String("request", name),
				log.Any("panic", r),
				log.String("stack", string(debug.Stack())),
			)
			reply = Reply{Error: &ReplyError{
				Code:    codes.Internal.String(),
				Message: "internal error",
			}}
		}
	}()
	return s.dispatch(ctx, name, payload)
}

func (s *Server) dispatch(ctx context.Context, name string, payload []byte) Reply {
	req, err := s.routes.Decode(name, payload)
	if err != nil {
		return errorReply(err)
	}

	result, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return errorReply(err)
	}

	view, err := route.View(result)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Result: view}
}

func errorReply(err error) Reply {
	st := route.Status(err)
	return Reply{Error: &ReplyError{
		Code:    st.Code().String(),
		Message: st.Message(),
		Fields:  route.FieldViolations(st),
	}}
}
