package tree

import (
	"encoding/binary"

	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Fingerprint identifies an input snapshot. An explicit Version token wins; otherwise the
// content of all four lists is hashed in order, so two datasets with equal list lengths but
// different content never collide on size alone.
func Fingerprint(in domain.Input) uint64 {
	d := xxhash.New()
	if in.Version != "" {
		_, _ = d.WriteString("v:")
		_, _ = d.WriteString(in.Version)
		return d.Sum64()
	}

	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(len(s))
		_, _ = d.WriteString(s)
	}
	writeDecimal := func(n decimal.NullDecimal) {
		if !n.Valid {
			writeString("")
			return
		}
		writeString("=" + n.Decimal.String())
	}

	writeInt(len(in.Segments))
	for _, s := range in.Segments {
		writeInt(s.ID)
		writeString(s.Name)
	}
	writeInt(len(in.Categories))
	for _, c := range in.Categories {
		writeInt(c.ID)
		writeInt(c.ParentSegmentID)
		writeString(c.Name)
	}
	writeInt(len(in.Items))
	for _, it := range in.Items {
		writeInt(it.ID)
		writeInt(it.ParentCategoryID)
		writeString(it.Name)
	}
	writeInt(len(in.Associations))
	for _, a := range in.Associations {
		writeInt(a.ID)
		writeInt(a.ItemID)
		writeDecimal(a.Discount)
		writeDecimal(a.Rebate)
	}
	return d.Sum64()
}
