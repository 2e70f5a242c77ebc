package network

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte(`{"roomId":"ABC123"}`)
	frame := EncodeFrame(MsgTypeJoinRoom, payload)

	assert.Len(t, frame, headerSize+len(payload))

	pkt, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, uint16(MsgTypeJoinRoom), pkt.MsgID)
	assert.Equal(t, uint16(len(payload)), pkt.Length)
	assert.Equal(t, payload, pkt.Data)
}

func TestEncodeFrameCopiesPayload(t *testing.T) {
	payload := []byte("original")
	frame := EncodeFrame(MsgTypeChat, payload)

	payload[0] = 'X'

	pkt, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), pkt.Data)
}

func TestFrameEmptyPayload(t *testing.T) {
	frame := EncodeFrame(MsgTypeHeartbeat, nil)

	pkt, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, uint16(MsgTypeHeartbeat), pkt.MsgID)
	assert.Empty(t, pkt.Data)
}

func TestDecodeFrameRejectsShortHeader(t *testing.T) {
	_, err := DecodeFrame([]byte{0, 1, 0})
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestDecodeFrameRejectsTruncatedPayload(t *testing.T) {
	frame := EncodeFrame(MsgTypeChat, []byte("hello"))

	_, err := DecodeFrame(frame[:len(frame)-2])
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}
