package standings

// Treap internals. The comparator puts higher ratings earlier and
// breaks ties on participant ID ascending, so in-order traversal is the
// standings order.

type node struct {
	id     string
	rating float64
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// before reports whether (aRating, aID) ranks earlier than (bRating, bID).
func before(aRating float64, aID string, bRating float64, bID string) bool {
	if aRating != bRating {
		return aRating > bRating
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, rating float64, prio uint64) *node {
	if n == nil {
		return &node{id: id, rating: rating, prio: prio, size: 1}
	}
	if before(rating, id, n.rating, n.id) {
		n.left = insert(n.left, id, rating, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, rating, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, rating float64) *node {
	if n == nil {
		return nil
	}
	switch {
	case rating == n.rating && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, rating)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, rating)
		}
	case before(rating, id, n.rating, n.id):
		n.left = deleteNode(n.left, id, rating)
	default:
		n.right = deleteNode(n.right, id, rating)
	}
	fix(n)
	return n
}

// countHigher returns how many entries hold a strictly higher rating.
func countHigher(n *node, rating float64) int {
	if n == nil {
		return 0
	}
	if n.rating > rating {
		return nsize(n.left) + 1 + countHigher(n.right, rating)
	}
	return countHigher(n.left, rating)
}

// collectTop appends up to limit entries in standings order.
func collectTop(n *node, limit int, byID map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTop(n.left, limit, byID, out)
	if len(*out) < limit {
		rec := byID[n.id]
		*out = append(*out, Entry{
			ParticipantID: n.id,
			Rating:        rec.rating,
			Sigma:         rec.sigma,
			Points:        rec.points,
		})
	}
	collectTop(n.right, limit, byID, out)
}
