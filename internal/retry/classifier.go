package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Transient SQLSTATE classes and codes, per the PostgreSQL errcodes appendix.
// Class 08 is connection exceptions, 53 insufficient resources, 57 operator
// intervention (admin/crash shutdown).
var (
	transientPgClasses = []string{"08", "53", "57"}

	transientPgCodes = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"55P03": true, // lock_not_available
	}
)

// Socket-level errnos worth retrying: the server may simply not be up yet or
// the route may recover.
var transientErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ENETUNREACH,
	syscall.EHOSTUNREACH,
}

// Message fragments that indicate a transient condition when the error does
// not carry a typed cause. Matched case-insensitively.
var transientMessagePatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"connection pool exhausted",
}

// PostgreSQLErrorClassifier decides whether a database or network error is
// worth retrying.
type PostgreSQLErrorClassifier struct{}

func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

// IsTransient reports whether err is a temporary condition. It checks, in
// order: SQLSTATE codes on pgconn errors, typed network errors, then known
// message fragments.
func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientSQLState(pgErr.Code)
	}

	return transientNetworkError(err) || transientMessage(err)
}

func transientSQLState(code string) bool {
	for _, class := range transientPgClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	return transientPgCodes[code]
}

func transientNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	if opErr.Temporary() || opErr.Timeout() {
		return true
	}
	for _, errno := range transientErrnos {
		if errors.Is(opErr.Err, errno) {
			return true
		}
	}
	return false
}

func transientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessagePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
