package cache

import "container/list"

// victimKey identifies one cached (entry, frame) pair inside an eviction
// policy's recency/insertion-order queue.
type victimKey struct {
	entry *Entry
	frame uint64
}

// recentlyUsedQueue is a doubly-linked recency queue with O(1) access,
// insert, and delete by key, grounded on RecentlyUsedQueue in the original
// engine's server/cache.py. container/list supplies the link structure; the
// hashtable is this type's own addition since container/list has no
// keyed lookup.
type recentlyUsedQueue struct {
	l     *list.List
	index map[victimKey]*list.Element
}

func newRecentlyUsedQueue() *recentlyUsedQueue {
	return &recentlyUsedQueue{l: list.New(), index: make(map[victimKey]*list.Element)}
}

func (q *recentlyUsedQueue) Len() int { return q.l.Len() }

func (q *recentlyUsedQueue) Contains(k victimKey) bool {
	_, ok := q.index[k]
	return ok
}

// Insert adds k at the head (most-recently-used position).
func (q *recentlyUsedQueue) Insert(k victimKey) {
	q.index[k] = q.l.PushFront(k)
}

// Append adds k at the tail (least-recently-used position).
func (q *recentlyUsedQueue) Append(k victimKey) {
	q.index[k] = q.l.PushBack(k)
}

// Access moves k to the head if present, else inserts it there.
func (q *recentlyUsedQueue) Access(k victimKey) {
	if el, ok := q.index[k]; ok {
		q.l.MoveToFront(el)
		return
	}
	q.Insert(k)
}

func (q *recentlyUsedQueue) Delete(k victimKey) {
	if el, ok := q.index[k]; ok {
		q.l.Remove(el)
		delete(q.index, k)
	}
}

func (q *recentlyUsedQueue) PopHead() (victimKey, bool) {
	el := q.l.Front()
	if el == nil {
		return victimKey{}, false
	}
	k := el.Value.(victimKey)
	q.l.Remove(el)
	delete(q.index, k)
	return k, true
}

func (q *recentlyUsedQueue) PopTail() (victimKey, bool) {
	el := q.l.Back()
	if el == nil {
		return victimKey{}, false
	}
	k := el.Value.(victimKey)
	q.l.Remove(el)
	delete(q.index, k)
	return k, true
}

func (q *recentlyUsedQueue) IsEmpty() bool { return q.l.Len() == 0 }

// middleRecentlyUsedQueue keeps two balanced recentlyUsedQueues so that a
// "pop the middle" operation is O(1): q1's tail sits adjacent to q2's head,
// so the conceptual middle of the combined queue is always q2's head,
// grounded on MiddleRecentlyUsedQueue in the original engine's
// server/cache.py. Used by the Specialised eviction policy to avoid the
// classic LRU-cliff on long sequential sweeps.
type middleRecentlyUsedQueue struct {
	q1, q2 *recentlyUsedQueue
}

func newMiddleRecentlyUsedQueue() *middleRecentlyUsedQueue {
	return &middleRecentlyUsedQueue{q1: newRecentlyUsedQueue(), q2: newRecentlyUsedQueue()}
}

func (q *middleRecentlyUsedQueue) Len() int { return q.q1.Len() + q.q2.Len() }

func (q *middleRecentlyUsedQueue) Contains(k victimKey) bool {
	return q.q1.Contains(k) || q.q2.Contains(k)
}

// recoverInvariant keeps len(q1) within [len(q2)-1, len(q2)] by shifting
// one element across the boundary, exactly mirroring the original's
// recoverInvariant.
func (q *middleRecentlyUsedQueue) recoverInvariant() {
	if q.q1.Len() >= q.q2.Len()+1 {
		if tail, ok := q.q1.PopTail(); ok {
			q.q2.Insert(tail)
		}
	} else if q.q1.Len() == q.q2.Len()-2 {
		if head, ok := q.q2.PopHead(); ok {
			q.q1.Append(head)
		}
	}
}

func (q *middleRecentlyUsedQueue) Insert(k victimKey) {
	q.q1.Insert(k)
	q.recoverInvariant()
}

func (q *middleRecentlyUsedQueue) Append(k victimKey) {
	q.q2.Append(k)
	q.recoverInvariant()
}

func (q *middleRecentlyUsedQueue) Access(k victimKey) {
	if q.q1.Contains(k) {
		q.q1.Access(k)
		return
	}
	if q.q2.Contains(k) {
		q.q2.Delete(k)
		q.q1.Insert(k)
		q.recoverInvariant()
		return
	}
	q.Insert(k)
}

func (q *middleRecentlyUsedQueue) Delete(k victimKey) {
	if q.q1.Contains(k) {
		q.q1.Delete(k)
	} else if q.q2.Contains(k) {
		q.q2.Delete(k)
	} else {
		return
	}
	q.recoverInvariant()
}

func (q *middleRecentlyUsedQueue) PopHead() (victimKey, bool) {
	k, ok := q.q1.PopHead()
	if ok {
		q.recoverInvariant()
	}
	return k, ok
}

// PopMiddle removes and returns the element at the conceptual middle of the
// combined queue — q2's head, the boundary-adjacent element.
func (q *middleRecentlyUsedQueue) PopMiddle() (victimKey, bool) {
	k, ok := q.q2.PopHead()
	if ok {
		q.recoverInvariant()
	}
	return k, ok
}

func (q *middleRecentlyUsedQueue) PopTail() (victimKey, bool) {
	k, ok := q.q2.PopTail()
	if ok {
		q.recoverInvariant()
	}
	return k, ok
}

func (q *middleRecentlyUsedQueue) IsEmpty() bool { return q.Len() == 0 }
