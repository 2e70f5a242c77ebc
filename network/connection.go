// network/connection.go
package network

import (
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Wire frames are binary websocket messages carrying a fixed header
// followed by a JSON payload:
//
//	bytes 0..1  message id, big endian
//	bytes 2..3  payload length, big endian
//	bytes 4..   payload
const headerSize = 4

// Packet is one decoded wire frame.
type Packet struct {
	MsgID  uint16
	Data   []byte
	Length uint16
}

// Connection is the transport seen by the session layer. Both the real
// websocket connection and the test doubles implement it.
type Connection interface {
	Send(msgID uint16, data []byte) error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
	ReadPacket() (*Packet, error)
}

// EncodeFrame prepends the wire header to a payload. The payload is
// copied, so the caller may reuse its buffer.
func EncodeFrame(msgID uint16, data []byte) []byte {
	frame := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint16(frame[0:2], msgID)
	binary.BigEndian.PutUint16(frame[2:4], uint16(len(data)))
	copy(frame[headerSize:], data)
	return frame
}

// DecodeFrame parses one wire frame. Frames shorter than the header, or
// whose declared length overruns the buffer, fail with io.ErrShortBuffer.
func DecodeFrame(frame []byte) (*Packet, error) {
	if len(frame) < headerSize {
		return nil, io.ErrShortBuffer
	}
	msgID := binary.BigEndian.Uint16(frame[0:2])
	length := binary.BigEndian.Uint16(frame[2:4])
	if len(frame) < headerSize+int(length) {
		return nil, io.ErrShortBuffer
	}
	return &Packet{
		MsgID:  msgID,
		Length: length,
		Data:   frame[headerSize : headerSize+int(length)],
	}, nil
}

// WSConnection adapts a gorilla websocket to the Connection interface.
// Sends are serialized under a mutex since the room actor and the
// session reader may both write.
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	heartbeat time.Duration
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Send(msgID uint16, data []byte) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, EncodeFrame(msgID, data))
}

func (c *WSConnection) ReadPacket() (*Packet, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return DecodeFrame(data)
}

// SetHeartbeat arms the read deadline at twice the interval, so one
// missed ping is forgiven before the connection is dropped.
func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.heartbeat = interval
	c.conn.SetReadDeadline(time.Now().Add(interval * 2))
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
