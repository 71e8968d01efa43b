package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsRecorder is the subset of MetricsClient the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
	IsEnabled() bool
}

type metricsAPI interface {
	PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsClient puts single data points to CloudWatch. Every point carries
// a Service dimension. A nil client is valid and records nothing.
type MetricsClient struct {
	api       metricsAPI
	namespace string
	service   string
	now       func() time.Time
}

func NewMetricsClient(cfg sdkaws.Config, namespace, service string) *MetricsClient {
	return &MetricsClient{
		api:       cloudwatch.NewFromConfig(cfg),
		namespace: namespace,
		service:   service,
		now:       time.Now,
	}
}

// RecordCount adds one to a counter.
func (m *MetricsClient) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	return m.put(ctx, metricName, 1, types.StandardUnitCount, dimensions)
}

// RecordLatency records a duration in milliseconds.
func (m *MetricsClient) RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error {
	return m.put(ctx, metricName, float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

func (m *MetricsClient) IsEnabled() bool {
	return m != nil && m.api != nil
}

func (m *MetricsClient) put(ctx context.Context, name string, value float64, unit types.StandardUnit, dimensions map[string]string) error {
	if !m.IsEnabled() {
		return nil
	}
	_, err := m.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(m.namespace),
		MetricData: []types.MetricDatum{{
			MetricName: sdkaws.String(name),
			Value:      sdkaws.Float64(value),
			Unit:       unit,
			Timestamp:  sdkaws.Time(m.now()),
			Dimensions: m.dimensions(dimensions),
		}},
	})
	if err != nil {
		return fmt.Errorf("put metric %s: %w", name, err)
	}
	return nil
}

// dimensions returns the caller's dimensions sorted by name, plus Service
// unless the caller set it.
func (m *MetricsClient) dimensions(in map[string]string) []types.Dimension {
	names := make([]string, 0, len(in)+1)
	for k := range in {
		names = append(names, k)
	}
	if _, ok := in["Service"]; !ok && m.service != "" {
		names = append(names, "Service")
	}
	sort.Strings(names)

	dims := make([]types.Dimension, 0, len(names))
	for _, k := range names {
		v, ok := in[k]
		if !ok {
			v = m.service
		}
		dims = append(dims, types.Dimension{Name: sdkaws.String(k), Value: sdkaws.String(v)})
	}
	return dims
}

const (
	// HTTP metrics
	MetricHTTPRequests = "HTTPRequests"
	MetricHTTPErrors   = "HTTPErrors"
	MetricHTTPLatency  = "HTTPLatency"
	MetricHTTP4xx      = "HTTP4xxErrors"
	MetricHTTP5xx      = "HTTP5xxErrors"

	// Payment and document metrics
	MetricPaymentsRecorded  = "PaymentsRecorded"
	MetricPaymentsRejected  = "PaymentsRejected"
	MetricPaymentsFailed    = "PaymentsFailed"
	MetricProofUploadFailed = "ProofUploadFailed"
	MetricProofsUploaded    = "ProofsUploaded"
	MetricDocumentsUploaded = "DocumentsUploaded"
	MetricDocumentsFailed   = "DocumentsFailed"
	MetricLedgerExports     = "LedgerExports"
	MetricSessionsForcedOut = "SessionsForcedOut"

	MetricBackendLatency = "BackendLatency"
	MetricCacheHits      = "CacheHits"
	MetricCacheMisses    = "CacheMisses"
)
