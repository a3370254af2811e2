package main

/*
#include <stdlib.h>
#include "core.h"

typedef struct counting_state {
	long live;
	int failing;
} counting_state;

static counting_state *counting_state_get(void) {
	static counting_state state;
	return &state;
}

// Zero-byte requests return NULL, as some libc mallocs do.
static void *counting_allocate(void *ctx, size_t size) {
	counting_state *s = ctx;
	if (s->failing || size == 0) {
		return NULL;
	}
	void *p = malloc(size);
	if (p != NULL) {
		s->live++;
	}
	return p;
}

static void *counting_allocate_zeroed(void *ctx, size_t size) {
	counting_state *s = ctx;
	if (s->failing || size == 0) {
		return NULL;
	}
	void *p = calloc(1, size);
	if (p != NULL) {
		s->live++;
	}
	return p;
}

static core_error counting_reallocate(void *ctx, void **p, size_t old_size, size_t new_size) {
	counting_state *s = ctx;
	(void)old_size;
	if (s->failing || new_size == 0) {
		return 1;
	}
	void *n = realloc(*p, new_size);
	if (n == NULL) {
		return 1;
	}
	*p = n;
	return 0;
}

// *p is left untouched, the caller clears it.
static core_error counting_deallocate(void *ctx, void **p, size_t size) {
	counting_state *s = ctx;
	(void)size;
	if (*p == NULL) {
		return 1;
	}
	free(*p);
	s->live--;
	return 0;
}

static core_allocator *counting_allocator(void) {
	static core_allocator vtable = {
		.allocate = counting_allocate,
		.allocate_zeroed = counting_allocate_zeroed,
		.reallocate = counting_reallocate,
		.deallocate = counting_deallocate,
	};
	vtable.ctx = counting_state_get();
	return &vtable;
}

static core_allocator *counting_allocator_incomplete(void) {
	static core_allocator vtable;
	vtable = *counting_allocator();
	vtable.deallocate = NULL;
	return &vtable;
}

static long counting_live(void) {
	return counting_state_get()->live;
}

static void counting_fail(int failing) {
	counting_state_get()->failing = failing;
}

static void counting_reset(void) {
	counting_state *s = counting_state_get();
	s->live = 0;
	s->failing = 0;
}
*/
import "C"

import "github.com/outofforest/corestd/types"

// countingAllocator returns allocator vtable backed by C heap which counts live blocks.
// Counters are reset on every call.
func countingAllocator() *C.core_allocator {
	C.counting_reset()
	return C.counting_allocator()
}

// incompleteAllocator returns vtable missing the deallocation entry.
func incompleteAllocator() *C.core_allocator {
	return C.counting_allocator_incomplete()
}

func countingLive() int {
	return int(C.counting_live())
}

func failCounting(failing bool) {
	C.counting_fail(C.int(types.BoolOf(failing)))
}
