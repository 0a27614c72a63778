package contract

import (
	"context"
	"log/slog"
)

type operatorKey struct{}

// WithOperator returns a copy of ctx carrying the name of the operator
// on whose behalf the call is made. It only affects logging.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator)
}

// Operator returns the operator name stored by WithOperator
func Operator(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(operatorKey{}).(string)
	return operator, ok && operator != ""
}

// operatorAttr - атрибут лога с оператором, пустой атрибут slog пропускает
func operatorAttr(ctx context.Context) slog.Attr {
	if operator, ok := Operator(ctx); ok {
		return slog.String("operator", operator)
	}
	return slog.Attr{}
}
