package api

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestRecordInputWireShape(t *testing.T) {
	c := encoding.GetCodec(CodecName)

	var in UpdateRecordRequest
	require.NoError(t, c.Unmarshal([]byte(`{"id":7,"date":"2024-03-04","distance_meters":5000,"duration":"30m"}`), &in))
	assert.Equal(t, int64(7), in.ID)
	assert.Equal(t, "2024-03-04", in.Date)
	assert.Equal(t, timex.Duration{Duration: 30 * time.Minute}, in.Duration)
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/jogging.v1.JoggingService/Login", FullMethod(MethodLogin))
}
