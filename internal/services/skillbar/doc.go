// Package skillbar previews Guild Wars skill templates in chat.
//
// A command decodes a template, composes an icon strip and posts an overview
// page seeded with digit reactions. Reactions flip pages by re-reading the
// template embedded in the posted message, so no session state is kept
// between events.
package skillbar
