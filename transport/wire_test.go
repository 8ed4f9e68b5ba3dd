package transport

import (
	"context"
	"io"
	"testing"
	"time"

	"seatrouter/adapters/memory"
	"seatrouter/api"
	"seatrouter/config"
	"seatrouter/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protowire"
)

// frameCodec passes already encoded frames through, so the test talks protobuf binary the way a
// client generated from reservation.proto does without using the api bindings.
type frameCodec struct{}

func (frameCodec) Marshal(v any) ([]byte, error) { return *v.(*[]byte), nil }

func (frameCodec) Unmarshal(data []byte, v any) error {
	*v.(*[]byte) = append([]byte(nil), data...)
	return nil
}

func (frameCodec) Name() string { return "proto" }

type decodedField struct {
	varint uint64
	bytes  string
}

func decodeFields(t *testing.T, b []byte) map[protowire.Number]decodedField {
	t.Helper()
	out := map[protowire.Number]decodedField{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			require.GreaterOrEqual(t, n, 0)
			out[num] = decodedField{varint: v}
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			require.GreaterOrEqual(t, n, 0)
			out[num] = decodedField{bytes: v}
			b = b[n:]
		default:
			t.Fatalf("unexpected wire type %d for field %d", typ, num)
		}
	}
	return out
}

func TestServer_speaksProtobufBinary(t *testing.T) {
	lis, addr := listen(t)
	srv := NewServer(2, log.NewNopLogger())
	srv.Register(service.NewSeatManager(memory.NewSeatStore(config.DefaultRooms(2)), log.NewNopLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, lis) }()
	defer func() {
		cancel()
		<-served
	}()

	conn, err := Dial(addr)
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()

	var req []byte
	req = protowire.AppendTag(req, 1, protowire.BytesType)
	req = protowire.AppendString(req, "Ann")
	req = protowire.AppendTag(req, 2, protowire.VarintType)
	req = protowire.AppendVarint(req, 1)

	var resp []byte
	err = conn.Invoke(callCtx, api.ReservationService_ReserveSeat_FullMethodName, &req, &resp,
		grpc.ForceCodec(frameCodec{}), grpc.WaitForReady(true))
	require.NoError(t, err)
	fields := decodeFields(t, resp)
	assert.Equal(t, uint64(1), fields[1].varint, "success")
	assert.Equal(t, "Room 1 successfully reserved for Ann.", fields[2].bytes)

	stream, err := conn.NewStream(callCtx, &api.ReservationService_ServiceDesc.Streams[0],
		api.ReservationService_GetSeatStatus_FullMethodName, grpc.ForceCodec(frameCodec{}))
	require.NoError(t, err)
	empty := []byte{}
	require.NoError(t, stream.SendMsg(&empty))
	require.NoError(t, stream.CloseSend())

	var seats []map[protowire.Number]decodedField
	for {
		var frame []byte
		err := stream.RecvMsg(&frame)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		seats = append(seats, decodeFields(t, frame))
	}
	require.Len(t, seats, 2)
	assert.Equal(t, uint64(1), seats[0][1].varint)
	assert.Equal(t, "Occupied", seats[0][2].bytes)
	assert.Equal(t, uint64(2), seats[1][1].varint)
	assert.Equal(t, "Free", seats[1][2].bytes)
}
