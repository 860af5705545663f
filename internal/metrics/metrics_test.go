package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolCall(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordToolCall("create-user", nil, 10*time.Millisecond)
	m.RecordToolCall("create-user", nil, 20*time.Millisecond)
	m.RecordToolCall("create-user", errors.New("disk full"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("create-user", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("create-user", StatusError)))
}

func TestRecordResourceRead(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordResourceRead("resource://docs/company-policy", errors.New("missing"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.ResourceReadsTotal.WithLabelValues("resource://docs/company-policy", StatusError)))
}

func TestGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetUsers(7)
	m.SetDocumentTextBytes(2048)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.UsersTotal))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.DocumentTextBytes))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.ServerUptimeSeconds), 0.0)
}

func TestSeparateRegistries(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	require.Panics(t, func() { New(reg) }, "registering twice on one registry must fail")
	require.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
