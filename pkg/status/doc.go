/*
Package status models the annotations a post-processing run leaves behind.

	+-------------+     +-------------+     +----------------+
	|  Transform  | --> |  Collector  | --> | trailing ";" |
	|  (Message)  |     | (in order)  |     | comment lines  |
	+-------------+     +-------------+     +----------------+

🎯 Purpose:
- One Message per transform, plus any extra warnings it raises
- Messages are immutable and single-line so the status block stays greppable
- The Collector is append-only; its order is the execution order

🔍 Example:

	c := status.NewCollector()
	c.Add(status.Changed("Filament swap spiral removal", "Filament swap spiral removal: Successfully ..."))
	c.Add(status.Disabled("Brim detection"))
	doc.Append(c.Comments()...)
*/
package status
