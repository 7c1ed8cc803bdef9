// Package feeengine owns the protocol fee configuration inside the
// finance-core context.
//
// The module holds the versioned ProgramConfig record (admin, fee collector),
// resolves the active collector with a fixed default fallback, and performs
// the fee transfers every value-moving operation in the protocol skims:
// additive fees paid on top of the nominal amount, flat proposal fees, and
// fees deducted from escrow principal at settlement.
package feeengine
