package domain

import (
	"cmp"
	"slices"
	"time"
)

// TitleNode is a rollup leaf: one window title within an (app, domain)
// pair.
type TitleNode struct {
	WindowTitle       string
	TotalSeconds      int64
	DurationFormatted string
}

// DomainNode aggregates one content bucket within an application.
type DomainNode struct {
	Domain            string
	TotalSeconds      int64
	DurationFormatted string
	Titles            []TitleNode
}

// AppNode is the top level of the rollup: one application with its content
// buckets. The sum of the children's TotalSeconds equals the node's own,
// within integer-second truncation of leaf durations.
type AppNode struct {
	AppName           string
	TotalSeconds      int64
	DurationFormatted string
	Domains           []DomainNode
}

// FlatEntry aggregates one (application, window title) pair without the
// domain tier. StartTime is the earliest start observed for the pair.
type FlatEntry struct {
	AppName           string
	WindowTitle       string
	StartTime         time.Time
	TotalSeconds      int64
	DurationFormatted string
}

type titleAcc struct {
	total time.Duration
}

type domainAcc struct {
	total  time.Duration
	order  []string
	titles map[string]*titleAcc
}

type appAcc struct {
	total   time.Duration
	order   []string
	domains map[string]*domainAcc
}

// AggregateHierarchical builds the three-level rollup
// (application → domain → window title) from a set of activities.
// Durations are summed exactly and truncated to whole seconds per node
// after accumulation. Every level is sorted by total descending; ties keep
// first-seen order. The function is pure: the same input always yields the
// same structure.
func AggregateHierarchical(activities []Activity) []AppNode {
	apps := make(map[string]*appAcc)
	var order []string

	for _, act := range activities {
		d := act.Duration()

		app, ok := apps[act.AppName]
		if !ok {
			app = &appAcc{domains: make(map[string]*domainAcc)}
			apps[act.AppName] = app
			order = append(order, act.AppName)
		}
		app.total += d

		dom, ok := app.domains[act.DomainInfo]
		if !ok {
			dom = &domainAcc{titles: make(map[string]*titleAcc)}
			app.domains[act.DomainInfo] = dom
			app.order = append(app.order, act.DomainInfo)
		}
		dom.total += d

		title, ok := dom.titles[act.WindowTitle]
		if !ok {
			title = &titleAcc{}
			dom.titles[act.WindowTitle] = title
			dom.order = append(dom.order, act.WindowTitle)
		}
		title.total += d
	}

	nodes := make([]AppNode, 0, len(order))
	for _, appName := range order {
		app := apps[appName]

		domains := make([]DomainNode, 0, len(app.order))
		for _, domainName := range app.order {
			dom := app.domains[domainName]

			titles := make([]TitleNode, 0, len(dom.order))
			for _, titleName := range dom.order {
				secs := wholeSeconds(dom.titles[titleName].total)
				titles = append(titles, TitleNode{
					WindowTitle:       titleName,
					TotalSeconds:      secs,
					DurationFormatted: FormatDuration(secs),
				})
			}
			sortBySecondsDesc(titles, func(n TitleNode) int64 { return n.TotalSeconds })

			secs := wholeSeconds(dom.total)
			domains = append(domains, DomainNode{
				Domain:            domainName,
				TotalSeconds:      secs,
				DurationFormatted: FormatDuration(secs),
				Titles:            titles,
			})
		}
		sortBySecondsDesc(domains, func(n DomainNode) int64 { return n.TotalSeconds })

		secs := wholeSeconds(app.total)
		nodes = append(nodes, AppNode{
			AppName:           appName,
			TotalSeconds:      secs,
			DurationFormatted: FormatDuration(secs),
			Domains:           domains,
		})
	}
	sortBySecondsDesc(nodes, func(n AppNode) int64 { return n.TotalSeconds })

	return nodes
}

// AggregateFlat groups activities by (application, window title) only,
// keeping the earliest start time seen per pair. Entries are sorted by
// total duration descending, ties in first-seen order.
func AggregateFlat(activities []Activity) []FlatEntry {
	type pair struct {
		app, title string
	}
	type flatAcc struct {
		start time.Time
		total time.Duration
	}

	groups := make(map[pair]*flatAcc)
	var order []pair

	for _, act := range activities {
		key := pair{act.AppName, act.WindowTitle}
		acc, ok := groups[key]
		if !ok {
			acc = &flatAcc{start: act.StartTime}
			groups[key] = acc
			order = append(order, key)
		}
		if act.StartTime.Before(acc.start) {
			acc.start = act.StartTime
		}
		acc.total += act.Duration()
	}

	entries := make([]FlatEntry, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		secs := wholeSeconds(acc.total)
		entries = append(entries, FlatEntry{
			AppName:           key.app,
			WindowTitle:       key.title,
			StartTime:         acc.start,
			TotalSeconds:      secs,
			DurationFormatted: FormatDuration(secs),
		})
	}
	sortBySecondsDesc(entries, func(e FlatEntry) int64 { return e.TotalSeconds })

	return entries
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d.Seconds())
}

func sortBySecondsDesc[T any](nodes []T, seconds func(T) int64) {
	slices.SortStableFunc(nodes, func(a, b T) int {
		return cmp.Compare(seconds(b), seconds(a))
	})
}
