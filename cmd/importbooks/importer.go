package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore/internal/core/domain/model/catalog"

	"github.com/lib/pq"
)

var header = []string{"title", "author", "price", "stock", "category"}

// xmax is zero for freshly inserted tuples, which tells inserts and
// conflict updates apart in one statement.
const upsertBook = `
	INSERT INTO books (title, author, price, stock, category)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (title, author) DO UPDATE SET
		stock = books.stock + EXCLUDED.stock
	RETURNING (xmax = 0) AS inserted`

type ImportStats struct {
	Inserted  int
	Restocked int
}

// ParseCSV reads and validates every row before anything is written.
func ParseCSV(r io.Reader) ([]catalog.Book, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := columnIndex(first)
	if err != nil {
		return nil, err
	}

	var books []catalog.Book
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return books, nil
		}
		if err != nil {
			return nil, err
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[columns["price"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(record[columns["stock"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: stock: %w", line, err)
		}

		book, err := catalog.NewBook(0,
			record[columns["title"]],
			record[columns["author"]],
			price,
			stock,
			record[columns["category"]],
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		books = append(books, book)
	}
}

func columnIndex(names []string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, want := range header {
		if _, ok := index[want]; !ok {
			return nil, fmt.Errorf("missing column %q, header must be %s", want, strings.Join(header, ","))
		}
	}
	return index, nil
}

// Import upserts books in one transaction.
func Import(ctx context.Context, db *sql.DB, books []catalog.Book) (ImportStats, error) {
	var stats ImportStats

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertBook)
	if err != nil {
		return stats, describe(err)
	}
	defer stmt.Close()

	for _, b := range books {
		var inserted bool
		err = stmt.QueryRowContext(ctx, b.Title, b.Author, b.Price, b.Stock, b.Category).Scan(&inserted)
		if err != nil {
			return ImportStats{}, fmt.Errorf("%s / %s: %w", b.Title, b.Author, describe(err))
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Restocked++
		}
	}

	if err = tx.Commit(); err != nil {
		return ImportStats{}, describe(err)
	}
	return stats, nil
}

func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
