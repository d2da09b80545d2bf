package pricefeed

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	decimalsKey = 'd'
	answerKey   = 'a'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	args := data.(struct {
		decimals int
		answer   int
	})

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{decimalsKey}, args.decimals)
	storage.Put(ctx, []byte{answerKey}, args.answer)
}

// Decimals returns precision of the price.
func Decimals() int {
	return storage.Get(storage.GetReadOnlyContext(), []byte{decimalsKey}).(int)
}

// LatestAnswer returns USD price of 1 GAS with Decimals precision.
func LatestAnswer() int {
	return storage.Get(storage.GetReadOnlyContext(), []byte{answerKey}).(int)
}

// UpdateAnswer sets new price. Anyone can do it.
func UpdateAnswer(answer int) {
	storage.Put(storage.GetContext(), []byte{answerKey}, answer)
	runtime.Notify("AnswerUpdated", answer)
}
