package graph

//*******************************************
// graph structs
//*******************************************

type VertexId = int32
type EdgeId = int32

type Edge struct {
	From   VertexId
	To     VertexId
	Weight float64
}
