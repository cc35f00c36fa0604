package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Instruction is a side effect a pair operation requests from a collaborator.
// The set of implementations is closed; dispatchers switch over it exhaustively.
type Instruction interface {
	isInstruction()
}

// BankSend moves native coins held by the pair to To.
type BankSend struct {
	To     sdk.AccAddress
	Amount sdk.Coins
}

// TokenTransfer moves tokens held by the pair on Ledger to Recipient.
type TokenTransfer struct {
	Ledger    sdk.AccAddress
	Recipient sdk.AccAddress
	Amount    math.Int
}

// TokenTransferFrom pulls tokens from Owner to Recipient using the pair's allowance.
type TokenTransferFrom struct {
	Ledger    sdk.AccAddress
	Owner     sdk.AccAddress
	Recipient sdk.AccAddress
	Amount    math.Int
}

// TokenMint mints new tokens on a ledger the pair is the minter of.
type TokenMint struct {
	Ledger    sdk.AccAddress
	Recipient sdk.AccAddress
	Amount    math.Int
}

// TokenBurn burns tokens held by the pair.
type TokenBurn struct {
	Ledger sdk.AccAddress
	Amount math.Int
}

// CreateLedger asks the host to instantiate a token ledger and route the
// acknowledgment back under ReplyID.
type CreateLedger struct {
	ReplyID uint64
	Msg     TokenInstantiateMsg
}

func (BankSend) isInstruction()          {}
func (TokenTransfer) isInstruction()     {}
func (TokenTransferFrom) isInstruction() {}
func (TokenMint) isInstruction()         {}
func (TokenBurn) isInstruction()         {}
func (CreateLedger) isInstruction()      {}

// Response is the result of a pair operation: instructions to dispatch and the
// attributes of the emitted event.
type Response struct {
	Instructions []Instruction
	Attributes   []sdk.Attribute

	onCommit []func()
}

// NewResponse starts a response for the given action.
func NewResponse(action string) *Response {
	return &Response{
		Attributes: []sdk.Attribute{sdk.NewAttribute(AttributeKeyAction, action)},
	}
}

// AddInstruction appends a side effect.
func (r *Response) AddInstruction(ins Instruction) *Response {
	r.Instructions = append(r.Instructions, ins)
	return r
}

// AddAttribute appends an event attribute.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, sdk.NewAttribute(key, value))
	return r
}

// OnCommit registers fn to run after the response's state changes and
// instructions have been committed.
func (r *Response) OnCommit(fn func()) *Response {
	r.onCommit = append(r.onCommit, fn)
	return r
}

// Committed runs the OnCommit callbacks in registration order. The host calls
// it once, after a successful write.
func (r *Response) Committed() {
	for _, fn := range r.onCommit {
		fn()
	}
	r.onCommit = nil
}

// Attribute returns the value of the first attribute with key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Event renders the response attributes as a pair event emitted by contract.
func (r *Response) Event(contract sdk.AccAddress) sdk.Event {
	attrs := make([]sdk.Attribute, 0, len(r.Attributes)+1)
	attrs = append(attrs, sdk.NewAttribute(AttributeKeyContractAddr, contract.String()))
	attrs = append(attrs, r.Attributes...)
	return sdk.NewEvent(EventTypePairExecute, attrs...)
}
