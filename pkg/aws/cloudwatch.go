package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// LogsOptions names where shipped log lines go.
type LogsOptions struct {
	Group         string
	Stream        string
	RetentionDays int32
	// BatchSize is how many lines are buffered before a PutLogEvents call.
	BatchSize int
}

type logsAPI interface {
	CreateLogGroup(ctx context.Context, in *cloudwatchlogs.CreateLogGroupInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogGroupOutput, error)
	PutRetentionPolicy(ctx context.Context, in *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// LogShipper buffers log lines and sends them to a CloudWatch Logs stream
// in batches. It is a zapcore.WriteSyncer; Sync sends whatever is buffered.
type LogShipper struct {
	api  logsAPI
	opts LogsOptions
	now  func() time.Time

	mu  sync.Mutex
	buf []types.InputLogEvent
}

// NewLogShipper creates the log group and stream and returns a shipper
// writing to them.
func NewLogShipper(ctx context.Context, cfg sdkaws.Config, opts LogsOptions) (*LogShipper, error) {
	return newLogShipper(ctx, cloudwatchlogs.NewFromConfig(cfg), opts)
}

func newLogShipper(ctx context.Context, api logsAPI, opts LogsOptions) (*LogShipper, error) {
	if opts.Group == "" || opts.Stream == "" {
		return nil, errors.New("log group and stream are required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	s := &LogShipper{api: api, opts: opts, now: time.Now}
	if err := s.ensureStream(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LogShipper) ensureStream(ctx context.Context) error {
	var exists *types.ResourceAlreadyExistsException

	_, err := s.api.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{LogGroupName: sdkaws.String(s.opts.Group)})
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("create log group %s: %w", s.opts.Group, err)
	}
	if s.opts.RetentionDays > 0 {
		_, err = s.api.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
			LogGroupName:    sdkaws.String(s.opts.Group),
			RetentionInDays: sdkaws.Int32(s.opts.RetentionDays),
		})
		if err != nil {
			return fmt.Errorf("set retention on %s: %w", s.opts.Group, err)
		}
	}
	_, err = s.api.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  sdkaws.String(s.opts.Group),
		LogStreamName: sdkaws.String(s.opts.Stream),
	})
	if err != nil && !errors.As(err, &exists) {
		return fmt.Errorf("create log stream %s: %w", s.opts.Stream, err)
	}
	return nil
}

// Write buffers one encoded log line. A failed send is reported on stderr
// and never fails the write.
func (s *LogShipper) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, types.InputLogEvent{
		Message:   sdkaws.String(msg),
		Timestamp: sdkaws.Int64(s.now().UnixMilli()),
	})
	if len(s.buf) >= s.opts.BatchSize {
		if err := s.flush(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "cloudwatch logs: %v\n", err)
		}
	}
	return len(p), nil
}

// Sync sends the buffered lines.
func (s *LogShipper) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(context.Background())
}

// flush must be called with mu held. The buffer is dropped even when the
// send fails so a dead endpoint cannot grow it without bound.
func (s *LogShipper) flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}
	events := s.buf
	s.buf = nil

	_, err := s.api.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  sdkaws.String(s.opts.Group),
		LogStreamName: sdkaws.String(s.opts.Stream),
		LogEvents:     events,
	})
	if err != nil {
		return fmt.Errorf("put %d log events: %w", len(events), err)
	}
	return nil
}
