package api

import "google.golang.org/protobuf/encoding/protowire"

type PingRequest struct{}

func (x *PingRequest) AppendProto(b []byte) []byte { return b }

func (x *PingRequest) UnmarshalProto(b []byte) error { return consumeFields(b, skipAll) }

type PingResponse struct{}

func (x *PingResponse) AppendProto(b []byte) []byte { return b }

func (x *PingResponse) UnmarshalProto(b []byte) error { return consumeFields(b, skipAll) }

type ReservationRequest struct {
	CustomerName string
	SeatNumber   int32
}

func (x *ReservationRequest) GetCustomerName() string {
	if x != nil {
		return x.CustomerName
	}
	return ""
}

func (x *ReservationRequest) GetSeatNumber() int32 {
	if x != nil {
		return x.SeatNumber
	}
	return 0
}

func (x *ReservationRequest) AppendProto(b []byte) []byte {
	b = appendString(b, 1, x.CustomerName)
	return appendInt32(b, 2, x.SeatNumber)
}

func (x *ReservationRequest) UnmarshalProto(b []byte) error {
	*x = ReservationRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &x.CustomerName)
		case 2:
			return consumeInt32(typ, b, &x.SeatNumber)
		}
		return 0
	})
}

type ReservationResponse struct {
	Success bool
	Message string
}

func (x *ReservationResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *ReservationResponse) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *ReservationResponse) AppendProto(b []byte) []byte {
	b = appendBool(b, 1, x.Success)
	return appendString(b, 2, x.Message)
}

func (x *ReservationResponse) UnmarshalProto(b []byte) error {
	*x = ReservationResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeBool(typ, b, &x.Success)
		case 2:
			return consumeString(typ, b, &x.Message)
		}
		return 0
	})
}

type SeatListRequest struct{}

func (x *SeatListRequest) AppendProto(b []byte) []byte { return b }

func (x *SeatListRequest) UnmarshalProto(b []byte) error { return consumeFields(b, skipAll) }

type SeatStatus struct {
	SeatNumber int32
	Status     string
	// Message is set only on the element synthesized when a tier is unavailable.
	Message string
}

func (x *SeatStatus) GetSeatNumber() int32 {
	if x != nil {
		return x.SeatNumber
	}
	return 0
}

func (x *SeatStatus) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *SeatStatus) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *SeatStatus) AppendProto(b []byte) []byte {
	b = appendInt32(b, 1, x.SeatNumber)
	b = appendString(b, 2, x.Status)
	return appendString(b, 3, x.Message)
}

func (x *SeatStatus) UnmarshalProto(b []byte) error {
	*x = SeatStatus{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeInt32(typ, b, &x.SeatNumber)
		case 2:
			return consumeString(typ, b, &x.Status)
		case 3:
			return consumeString(typ, b, &x.Message)
		}
		return 0
	})
}
