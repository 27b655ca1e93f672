package entitlements

// Owned filters resolved rows down to the products the customer can use
// right now: one-time purchases ("active") and subscriptions whose access
// window is still open ("active_until" and active). Paused, canceled and
// expired rows are dropped. Rows are deduplicated per product, keeping the
// first survivor of the timestamp-descending input, i.e. the most recent
// qualifying purchase or renewal wins.
func Owned(rows []Row) []Row {
	seen := make(map[int]struct{}, len(rows))
	owned := make([]Row, 0, len(rows))

	for _, r := range rows {
		keep := r.StatusKey == StatusActive ||
			(r.StatusKey == StatusActiveUntil && r.IsActive)
		if !keep {
			continue
		}
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		owned = append(owned, r)
	}
	return owned
}
