// Package viewport holds the zoom/offset state used to render a scaled,
// pannable view of the current image. It is pure geometry: any presentation
// layer feeds it window sizes and pointer positions and reads back the
// transform to draw with.
package viewport
