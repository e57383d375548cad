package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randomBase36(length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			sb.WriteByte(base36Alphabet[time.Now().UnixNano()%36])
			continue
		}
		sb.WriteByte(base36Alphabet[n.Int64()])
	}
	return sb.String()
}

func timestampBase36() string {
	return strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

// GenerateOrderCode creates a human-facing order reference like
// "ORD-X7K2P9MDE3FQ1".
func GenerateOrderCode() string {
	return fmt.Sprintf("ORD-%s%s", randomBase36(6), timestampBase36())
}

// GenerateAttendeeCode creates an attendee reference like "A-MDE3FQ1X7K2P9".
func GenerateAttendeeCode() string {
	return fmt.Sprintf("A-%s%s", timestampBase36(), randomBase36(6))
}

// GenerateBillingCode creates a customer billing reference like
// "CS-MDE3FQ1X7K2P9".
func GenerateBillingCode() string {
	return fmt.Sprintf("CS-%s%s", timestampBase36(), randomBase36(6))
}
