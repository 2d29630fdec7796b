package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// errorClass clasificación de errores de PostgreSQL para decidir si se reintenta.
type errorClass int

const (
	classPermanent errorClass = iota
	classTransient
	classConflict
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// classifyError: 23505 -> conflicto; serialización, deadlock, lock timeout, conexión
// y timeouts -> transitorio; el resto permanente.
func classifyError(err error) errorClass {
	if err == nil || errors.Is(err, context.Canceled) {
		return classPermanent
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return classTransient
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return classConflict
		case "40001", "40P01", "55P03", "57P01", "57P03", "53300":
			return classTransient
		}
		if strings.HasPrefix(pgErr.Code, "08") { // connection_exception
			return classTransient
		}
		return classPermanent
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return classTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return classTransient
	}
	if pgconn.SafeToRetry(err) {
		return classTransient
	}
	return classPermanent
}

// IsTransient informa si el error de base de datos merece reintento.
func IsTransient(err error) bool {
	return classifyError(err) == classTransient
}

// RetryPolicy límite por intento y reintentos ante fallos transitorios.
type RetryPolicy struct {
	Timeout     time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
}

// NoRetry política para repos atados a una tx: la tx completa se reintenta desde TxRunner.
var NoRetry = RetryPolicy{}

// backOff exponencial con jitter del 25%, acotado por MaxRetries y por ctx.
func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 50 * time.Millisecond
	if p.BaseBackoff > 0 {
		eb.InitialInterval = p.BaseBackoff
	}
	eb.RandomizationFactor = 0.25
	eb.Multiplier = 2
	eb.MaxInterval = 5 * time.Second
	if eb.InitialInterval > eb.MaxInterval {
		eb.MaxInterval = eb.InitialInterval
	}
	eb.MaxElapsedTime = 0
	retries := uint64(0)
	if p.MaxRetries > 0 {
		retries = uint64(p.MaxRetries)
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx)
}

// retry ejecuta fn con límite de tiempo por intento mientras retryable acepte la clase
// del error. Los errores no reintentables cortan de inmediato vía backoff.Permanent.
func retry(ctx context.Context, p RetryPolicy, retryable func(errorClass) bool, fn func(ctx context.Context) error) error {
	return backoff.Retry(func() error {
		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		defer cancel()
		err := fn(attemptCtx)
		if err != nil && !retryable(classifyError(err)) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx))
}

// withRetry reintenta fn sólo ante errores transitorios. El error final va envuelto con op.
func withRetry(ctx context.Context, p RetryPolicy, op string, fn func(ctx context.Context) error) error {
	err := retry(ctx, p, func(c errorClass) bool { return c == classTransient }, fn)
	if err == nil {
		return nil
	}
	if p.MaxRetries > 0 && IsTransient(err) {
		return fmt.Errorf("%s: reintentos agotados (%d): %w", op, p.MaxRetries, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
