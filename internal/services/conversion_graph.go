package services

import "github.com/terraincognita07/labunify/internal/models"

type Edge struct {
	ConversionID uint
	From         uint
	To           uint
	Formula      string
}

func (edge Edge) ref() *EdgeRef {
	return &EdgeRef{ConversionID: edge.ConversionID, FromUnitID: edge.From, ToUnitID: edge.To}
}

func (edge Edge) step() PathStep {
	return PathStep{FromUnitID: edge.From, ToUnitID: edge.To, Formula: edge.Formula}
}

// Graph maps a unit id to its outgoing edges in store order. Only stored
// directions are present.
type Graph map[uint][]Edge

func BuildGraph(conversions []models.UnitConversion) Graph {
	graph := make(Graph)
	for _, conversion := range conversions {
		graph[conversion.FromUnitID] = append(graph[conversion.FromUnitID], Edge{
			ConversionID: conversion.ID,
			From:         conversion.FromUnitID,
			To:           conversion.ToUnitID,
			Formula:      conversion.Formula,
		})
	}
	return graph
}

// Edge returns the first stored edge from -> to.
func (graph Graph) Edge(from uint, to uint) (Edge, bool) {
	for _, edge := range graph[from] {
		if edge.To == to {
			return edge, true
		}
	}
	return Edge{}, false
}

func (graph Graph) EdgeCount() int {
	count := 0
	for _, edges := range graph {
		count += len(edges)
	}
	return count
}
