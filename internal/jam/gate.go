package jam

import "slices"

// Verdict is the outcome of evaluating a participant's ban records against
// one jam. Record is the blocking record, already reflecting any decrement
// applied during evaluation.
type Verdict struct {
	Blocked bool
	Record  *BanRecord
}

// EvaluateBans runs the ban countdown rules over a participant's records in
// order and returns the verdict plus, when a countdown was consumed, the
// updated record the caller must persist. The function itself never touches
// storage.
//
// The first blocking record wins; later records are not inspected. A jam id
// is only ever charged against a record once: re-evaluating the same jam
// still blocks but returns no record to persist.
func EvaluateBans(records []BanRecord, jamID int64) (Verdict, *BanRecord) {
	for _, record := range records {
		switch {
		case record.Number == -1:
			// Indefinite ban, nothing to count down.
			return Verdict{Blocked: true, Record: &record}, nil

		case record.Number != 0:
			if !record.Charged(jamID) {
				record.Number--
				record.DecrementedFor = append(slices.Clone(record.DecrementedFor), jamID)
				return Verdict{Blocked: true, Record: &record}, &record
			}
			return Verdict{Blocked: true, Record: &record}, nil

		case record.Charged(jamID):
			// Ban ran out, but this jam was already charged against it.
			return Verdict{Blocked: true, Record: &record}, nil
		}
	}
	return Verdict{}, nil
}
